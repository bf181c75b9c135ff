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
	// EndPtSetAuthority transfers the ownership of a pool.
	EndPtSetAuthority EndPtName = "SetAuthority"
)

func init() {
	registrar[EndPtSetAuthority] = NewSetAuthority
}

// SetAuthority transfers the ownership of a pool to a new address. Only the
// current owner can transfer ownership.
type SetAuthority struct {
	Owner    string
	Pool     string
	NewOwner string
}

// NewSetAuthority constructs and initializes the endpoint.
func NewSetAuthority(
	r *http.Request,
) (Endpoint, error) {
	return &SetAuthority{}, nil
}

// Validate validates the input parameters.
func (e *SetAuthority) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Owner = authentication.Get(ctx).User.Token
	e.Pool = pat.Param(r, "pool")

	newOwner := r.PostFormValue("new_owner")
	if newOwner == "" {
		return errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_pool_account",
			"The new owner provided is empty.",
		))
	}
	e.NewOwner = newOwner

	return nil
}

// Execute executes the endpoint.
func (e *SetAuthority) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	pool, err := loadOwnedPool(ctx, e.Pool, e.Owner)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	pool.Owner = e.NewOwner
	if err := pool.Save(ctx); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"pool": format.JSONPtr(marketplace.NewPoolResource(ctx, pool)),
	}, nil
}
