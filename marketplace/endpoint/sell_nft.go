package endpoint

import (
	"context"
	"net/http"

	"github.com/curio/marketplace/lib/db"
	"github.com/curio/marketplace/lib/errors"
	"github.com/curio/marketplace/lib/format"
	"github.com/curio/marketplace/lib/ptr"
	"github.com/curio/marketplace/lib/svc"
	"github.com/curio/marketplace/marketplace"
	"github.com/curio/marketplace/marketplace/ledger"
	"github.com/curio/marketplace/marketplace/lib/authentication"
	"github.com/curio/marketplace/marketplace/model"
	"goji.io/pat"
)

const (
	// EndPtSellNft lists an NFT for sale.
	EndPtSellNft EndPtName = "SellNft"
)

func init() {
	registrar[EndPtSellNft] = NewSellNft
}

// SellNft lists an NFT for sale at a price: the NFT moves into the sale
// manager's escrow and a fresh sale pot snapshots the royalty schedule. A
// listing is primary as long as the NFT's primary sale has not happened.
type SellNft struct {
	Owner   string
	Pool    string
	NftMint string
	Price   int64
}

// NewSellNft constructs and initializes the endpoint.
func NewSellNft(
	r *http.Request,
) (Endpoint, error) {
	return &SellNft{}, nil
}

// Validate validates the input parameters.
func (e *SellNft) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Owner = authentication.Get(ctx).User.Token
	e.Pool = pat.Param(r, "pool")
	e.NftMint = pat.Param(r, "mint")

	price, err := ValidatePrice(ctx, r.PostFormValue("price"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Price = *price

	return nil
}

// Execute executes the endpoint.
func (e *SellNft) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	pool, err := loadPool(ctx, e.Pool)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	manager, err := loadSaleManager(ctx, pool.Token, e.NftMint)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	if manager.SaleState == model.SaleStateListed {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_sale_state",
			"The NFT %s is already listed for sale.",
			e.NftMint,
		))
	}

	extended, err := model.LoadMetadataExtendedByPoolNftMint(ctx,
		pool.Token, e.NftMint)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if extended == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_mint_account",
			"The NFT %s was not minted in pool %s.",
			e.NftMint, e.Pool,
		))
	}

	if extended.MaxPrice != 0 && e.Price > extended.MaxPrice {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_price",
			"The price provided exceeds the maximal price of NFT %s: "+
				"%d > %d.",
			e.NftMint, e.Price, extended.MaxPrice,
		))
	}

	metadata, err := ledger.LoadMetadataByNftMint(ctx, e.NftMint)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if metadata == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_mint_account",
			"The NFT mint %s carries no metadata.",
			e.NftMint,
		))
	}

	account, err := ledger.LoadAccountByMintOwner(ctx, e.NftMint, e.Owner)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if account == nil || account.Amount < 1 {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_token_account",
			"You do not hold the NFT %s.",
			e.NftMint,
		))
	}

	if metadata.UpdateAuthority != e.Owner {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_token_account",
			"You do not hold the update authority over NFT %s.",
			e.NftMint,
		))
	}

	// Snapshot the royalty schedule in a fresh pot, creators unverified.
	isPrimary := !metadata.PrimarySaleHappened
	creators := make(model.CreatorList, len(metadata.Creators))
	for i, c := range metadata.Creators {
		creators[i] = model.Creator{
			Address:  c.Address,
			Verified: false,
			Share:    c.Share,
		}
	}

	pot, err := model.CreateSalePot(ctx,
		manager.Token, manager.PoolPot, e.Price, isPrimary, e.Owner,
		metadata.SellerFeeBasisPoints, creators)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	err = ledger.Transfer(ctx,
		e.NftMint, e.Owner, manager.Token, 1, ledger.Signer(e.Owner))
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	err = ledger.UpdateMetadataAuthority(ctx,
		e.NftMint, manager.Token, ledger.Signer(e.Owner))
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	manager.Seller = e.Owner
	manager.SalePot = pot.Token
	manager.Price = e.Price
	manager.SaleState = model.SaleStateListed
	if err := manager.Save(ctx); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"sale": format.JSONPtr(marketplace.NewSaleResource(ctx, manager, pot)),
	}, nil
}
