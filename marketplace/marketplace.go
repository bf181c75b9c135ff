package marketplace

import (
	"context"
	"regexp"

	"github.com/curio/marketplace/marketplace/model"
)

const (
	// Version is the current version.
	Version string = "0.0.1"
)

// IDRegexp is used to validate object IDs.
var IDRegexp = regexp.MustCompile(
	"^[a-z]+_[A-Za-z0-9]+$")

// PoolResource is the representation of a pool in the marketplace API.
type PoolResource struct {
	ID       string `json:"id"`
	Created  int64  `json:"created"`
	Livemode bool   `json:"livemode"`

	Owner       string `json:"owner"`
	PresaleLive bool   `json:"presale_live"`
	SaleMint    string `json:"sale_mint"`
}

// NewPoolResource generates a new resource.
func NewPoolResource(
	ctx context.Context,
	pool *model.Pool,
) PoolResource {
	return PoolResource{
		ID:       pool.Token,
		Created:  pool.Created.UnixNano() / (1000 * 1000),
		Livemode: pool.Livemode,

		Owner:       pool.Owner,
		PresaleLive: pool.PresaleLive,
		SaleMint:    pool.SaleMint,
	}
}

// ClientResource is the representation of a whitelist entry in the
// marketplace API.
type ClientResource struct {
	ID       string `json:"id"`
	Created  int64  `json:"created"`
	Livemode bool   `json:"livemode"`

	Pool        string `json:"pool"`
	Owner       string `json:"owner"`
	Amount      int64  `json:"amount"`
	Whitelisted bool   `json:"whitelisted"`
}

// NewClientResource generates a new resource.
func NewClientResource(
	ctx context.Context,
	client *model.Client,
) ClientResource {
	return ClientResource{
		ID:       client.Token,
		Created:  client.Created.UnixNano() / (1000 * 1000),
		Livemode: client.Livemode,

		Pool:        client.Pool,
		Owner:       client.Owner,
		Amount:      client.Amount,
		Whitelisted: client.Whitelisted,
	}
}

// NftResource is the representation of a minted NFT in the marketplace API.
type NftResource struct {
	ID       string `json:"id"`
	Created  int64  `json:"created"`
	Livemode bool   `json:"livemode"`

	Pool     string `json:"pool"`
	NftMint  string `json:"nft_mint"`
	MaxPrice int64  `json:"max_price"`
}

// NewNftResource generates a new resource.
func NewNftResource(
	ctx context.Context,
	extended *model.MetadataExtended,
) NftResource {
	return NftResource{
		ID:       extended.Token,
		Created:  extended.Created.UnixNano() / (1000 * 1000),
		Livemode: extended.Livemode,

		Pool:     extended.Pool,
		NftMint:  extended.NftMint,
		MaxPrice: extended.MaxPrice,
	}
}

// SaleResource is the representation of a sale manager in the marketplace
// API.
type SaleResource struct {
	ID       string `json:"id"`
	Created  int64  `json:"created"`
	Livemode bool   `json:"livemode"`

	Pool      string `json:"pool"`
	NftMint   string `json:"nft_mint"`
	Seller    string `json:"seller"`
	Price     int64  `json:"price"`
	SaleState int8   `json:"sale_state"`

	Pot *PotResource `json:"pot"`
}

// NewSaleResource generates a new resource.
func NewSaleResource(
	ctx context.Context,
	manager *model.SaleManager,
	pot *model.SalePot,
) SaleResource {
	resource := SaleResource{
		ID:       manager.Token,
		Created:  manager.Created.UnixNano() / (1000 * 1000),
		Livemode: manager.Livemode,

		Pool:      manager.Pool,
		NftMint:   manager.NftMint,
		Seller:    manager.Seller,
		Price:     manager.Price,
		SaleState: int8(manager.SaleState),
	}
	if pot != nil {
		potResource := NewPotResource(ctx, pot)
		resource.Pot = &potResource
	}
	return resource
}

// PotResource is the representation of a sale pot in the marketplace API.
type PotResource struct {
	ID       string `json:"id"`
	Created  int64  `json:"created"`
	Livemode bool   `json:"livemode"`

	SaleManager          string            `json:"sale_manager"`
	Price                int64             `json:"price"`
	IsUsed               bool              `json:"is_used"`
	IsPrimary            bool              `json:"is_primary"`
	Seller               string            `json:"seller"`
	SellerVerified       bool              `json:"seller_verified"`
	SellerFeeBasisPoints int64             `json:"seller_fee_basis_points"`
	Creators             model.CreatorList `json:"creators"`
}

// NewPotResource generates a new resource.
func NewPotResource(
	ctx context.Context,
	pot *model.SalePot,
) PotResource {
	return PotResource{
		ID:       pot.Token,
		Created:  pot.Created.UnixNano() / (1000 * 1000),
		Livemode: pot.Livemode,

		SaleManager:          pot.SaleManager,
		Price:                pot.Price,
		IsUsed:               pot.IsUsed,
		IsPrimary:            pot.IsPrimary,
		Seller:               pot.Seller,
		SellerVerified:       pot.SellerVerified,
		SellerFeeBasisPoints: pot.SellerFeeBasisPoints,
		Creators:             pot.Creators,
	}
}
