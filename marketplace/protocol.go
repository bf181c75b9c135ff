package marketplace

import (
	"context"

	"github.com/curio/marketplace/marketplace/ledger"
	"github.com/curio/marketplace/marketplace/model"
)

// MintResource is the representation of a mint in the marketplace API.
type MintResource struct {
	ID       string `json:"id"`
	Created  int64  `json:"created"`
	Livemode bool   `json:"livemode"`

	Decimals  int8   `json:"decimals"`
	Supply    int64  `json:"supply"`
	Authority string `json:"authority"`
}

// NewMintResource generates a new resource.
func NewMintResource(
	ctx context.Context,
	mint *ledger.Mint,
) MintResource {
	return MintResource{
		ID:       mint.Token,
		Created:  mint.Created.UnixNano() / (1000 * 1000),
		Livemode: mint.Livemode,

		Decimals:  mint.Decimals,
		Supply:    mint.Supply,
		Authority: mint.Authority,
	}
}

// BalanceResource is the representation of an account balance in the
// marketplace API.
type BalanceResource struct {
	ID       string `json:"id"`
	Created  int64  `json:"created"`
	Livemode bool   `json:"livemode"`

	Mint   string `json:"mint"`
	Owner  string `json:"owner"`
	Amount int64  `json:"amount"`
}

// NewBalanceResource generates a new resource.
func NewBalanceResource(
	ctx context.Context,
	account *ledger.Account,
) BalanceResource {
	return BalanceResource{
		ID:       account.Token,
		Created:  account.Created.UnixNano() / (1000 * 1000),
		Livemode: account.Livemode,

		Mint:   account.Mint,
		Owner:  account.Owner,
		Amount: account.Amount,
	}
}

// MetadataResource is the representation of an NFT's metadata in the
// marketplace API.
type MetadataResource struct {
	ID       string `json:"id"`
	Created  int64  `json:"created"`
	Livemode bool   `json:"livemode"`

	NftMint              string            `json:"nft_mint"`
	Name                 string            `json:"name"`
	Symbol               string            `json:"symbol"`
	URI                  string            `json:"uri"`
	SellerFeeBasisPoints int64             `json:"seller_fee_basis_points"`
	Creators             model.CreatorList `json:"creators"`
	IsMutable            bool              `json:"is_mutable"`
	MasterEdition        bool              `json:"master_edition"`
	PrimarySaleHappened  bool              `json:"primary_sale_happened"`
	UpdateAuthority      string            `json:"update_authority"`
}

// NewMetadataResource generates a new resource.
func NewMetadataResource(
	ctx context.Context,
	metadata *ledger.Metadata,
) MetadataResource {
	return MetadataResource{
		ID:       metadata.Token,
		Created:  metadata.Created.UnixNano() / (1000 * 1000),
		Livemode: metadata.Livemode,

		NftMint:              metadata.NftMint,
		Name:                 metadata.Name,
		Symbol:               metadata.Symbol,
		URI:                  metadata.URI,
		SellerFeeBasisPoints: metadata.SellerFeeBasisPoints,
		Creators:             metadata.Creators,
		IsMutable:            metadata.IsMutable,
		MasterEdition:        metadata.MasterEdition,
		PrimarySaleHappened:  metadata.PrimarySaleHappened,
		UpdateAuthority:      metadata.UpdateAuthority,
	}
}
