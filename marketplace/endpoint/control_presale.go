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
	"goji.io/pat"
)

const (
	// EndPtControlPresale pauses or resumes a pool's presale.
	EndPtControlPresale EndPtName = "ControlPresale"
)

func init() {
	registrar[EndPtControlPresale] = NewControlPresale
}

// ControlPresale sets the presale_live flag of a pool. Only the pool owner
// can control the presale.
type ControlPresale struct {
	Owner string
	Pool  string
	Live  bool
}

// NewControlPresale constructs and initializes the endpoint.
func NewControlPresale(
	r *http.Request,
) (Endpoint, error) {
	return &ControlPresale{}, nil
}

// Validate validates the input parameters.
func (e *ControlPresale) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Owner = authentication.Get(ctx).User.Token
	e.Pool = pat.Param(r, "pool")

	live, err := ValidateBool(ctx, "live", r.PostFormValue("live"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Live = *live

	return nil
}

// Execute executes the endpoint.
func (e *ControlPresale) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	pool, err := loadOwnedPool(ctx, e.Pool, e.Owner)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	pool.PresaleLive = e.Live
	if err := pool.Save(ctx); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"pool": format.JSONPtr(marketplace.NewPoolResource(ctx, pool)),
	}, nil
}
