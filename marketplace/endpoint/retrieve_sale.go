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
	"github.com/curio/marketplace/marketplace/model"
	"goji.io/pat"
)

const (
	// EndPtRetrieveSale retrieves the sale of an NFT.
	EndPtRetrieveSale EndPtName = "RetrieveSale"
)

func init() {
	registrar[EndPtRetrieveSale] = NewRetrieveSale
}

// RetrieveSale retrieves the sale manager of an NFT in a pool along with its
// current pot and the NFT's metadata.
type RetrieveSale struct {
	Pool    string
	NftMint string
}

// NewRetrieveSale constructs and initializes the endpoint.
func NewRetrieveSale(
	r *http.Request,
) (Endpoint, error) {
	return &RetrieveSale{}, nil
}

// Validate validates the input parameters.
func (e *RetrieveSale) Validate(
	r *http.Request,
) error {
	e.Pool = pat.Param(r, "pool")
	e.NftMint = pat.Param(r, "mint")

	return nil
}

// Execute executes the endpoint.
func (e *RetrieveSale) Execute(
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

	var pot *model.SalePot
	if manager.SalePot != "" {
		pot, err = model.LoadSalePotByToken(ctx, manager.SalePot)
		if err != nil {
			return nil, nil, errors.Trace(err) // 500
		}
	}

	metadata, err := ledger.LoadCachedMetadataByNftMint(ctx, e.NftMint)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	resp := svc.Resp{
		"sale": format.JSONPtr(marketplace.NewSaleResource(ctx, manager, pot)),
	}
	if metadata != nil {
		resp["metadata"] = format.JSONPtr(
			marketplace.NewMetadataResource(ctx, metadata))
	}

	return ptr.Int(http.StatusOK), &resp, nil
}
