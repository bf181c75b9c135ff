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
	"github.com/curio/marketplace/marketplace/lib/authentication"
	"github.com/curio/marketplace/marketplace/model"
	"goji.io/pat"
)

const (
	// EndPtSetMaxPrice caps the listing price of an NFT.
	EndPtSetMaxPrice EndPtName = "SetMaxPrice"
)

func init() {
	registrar[EndPtSetMaxPrice] = NewSetMaxPrice
}

// SetMaxPrice sets the maximal listing price of an NFT in a pool. A
// max_price of 0 lifts the cap. Only the pool owner can set it.
type SetMaxPrice struct {
	Owner    string
	Pool     string
	NftMint  string
	MaxPrice int64
}

// NewSetMaxPrice constructs and initializes the endpoint.
func NewSetMaxPrice(
	r *http.Request,
) (Endpoint, error) {
	return &SetMaxPrice{}, nil
}

// Validate validates the input parameters.
func (e *SetMaxPrice) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Owner = authentication.Get(ctx).User.Token
	e.Pool = pat.Param(r, "pool")
	e.NftMint = pat.Param(r, "mint")

	maxPrice, err := ValidateAmount(ctx, r.PostFormValue("max_price"))
	if err != nil {
		return errors.Trace(err)
	}
	e.MaxPrice = *maxPrice

	return nil
}

// Execute executes the endpoint.
func (e *SetMaxPrice) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	pool, err := loadOwnedPool(ctx, e.Pool, e.Owner)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	extended, err := model.LoadMetadataExtendedByPoolNftMint(ctx,
		pool.Token, e.NftMint)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if extended == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "invalid_mint_account",
			"The NFT %s was not minted in pool %s.",
			e.NftMint, e.Pool,
		))
	}

	extended.MaxPrice = e.MaxPrice
	if err := extended.Save(ctx); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"nft": format.JSONPtr(marketplace.NewNftResource(ctx, extended)),
	}, nil
}
