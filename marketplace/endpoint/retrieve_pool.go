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
	"goji.io/pat"
)

const (
	// EndPtRetrievePool retrieves a pool.
	EndPtRetrievePool EndPtName = "RetrievePool"
)

func init() {
	registrar[EndPtRetrievePool] = NewRetrievePool
}

// RetrievePool retrieves a pool by token.
type RetrievePool struct {
	Pool string
}

// NewRetrievePool constructs and initializes the endpoint.
func NewRetrievePool(
	r *http.Request,
) (Endpoint, error) {
	return &RetrievePool{}, nil
}

// Validate validates the input parameters.
func (e *RetrievePool) Validate(
	r *http.Request,
) error {
	e.Pool = pat.Param(r, "pool")

	return nil
}

// Execute executes the endpoint.
func (e *RetrievePool) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	pool, err := loadPool(ctx, e.Pool)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"pool": format.JSONPtr(marketplace.NewPoolResource(ctx, pool)),
	}, nil
}
