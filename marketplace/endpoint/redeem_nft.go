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
	// EndPtRedeemNft redeems an unsold listing.
	EndPtRedeemNft EndPtName = "RedeemNft"
)

func init() {
	registrar[EndPtRedeemNft] = NewRedeemNft
}

// RedeemNft cancels a live listing: the NFT and its update authority move
// back from escrow to the seller and the sale manager returns to Unlisted.
// Only the seller can redeem.
type RedeemNft struct {
	Owner   string
	Pool    string
	NftMint string
}

// NewRedeemNft constructs and initializes the endpoint.
func NewRedeemNft(
	r *http.Request,
) (Endpoint, error) {
	return &RedeemNft{}, nil
}

// Validate validates the input parameters.
func (e *RedeemNft) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Owner = authentication.Get(ctx).User.Token
	e.Pool = pat.Param(r, "pool")
	e.NftMint = pat.Param(r, "mint")

	return nil
}

// Execute executes the endpoint.
func (e *RedeemNft) Execute(
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

	if manager.SaleState != model.SaleStateListed {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_sale_state",
			"The NFT %s is not listed for sale.",
			e.NftMint,
		))
	}

	if e.Owner != manager.Seller {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_seller",
			"You are not the seller of NFT %s.",
			e.NftMint,
		))
	}

	err = ledger.Transfer(ctx,
		e.NftMint, manager.Token, e.Owner, 1, ledger.Escrow(manager))
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	err = ledger.UpdateMetadataAuthority(ctx,
		e.NftMint, e.Owner, ledger.Escrow(manager))
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	manager.SaleState = model.SaleStateUnlisted
	if err := manager.Save(ctx); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"sale": format.JSONPtr(marketplace.NewSaleResource(ctx, manager, nil)),
	}, nil
}
