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
)

const (
	// EndPtCreatePool creates a new pool.
	EndPtCreatePool EndPtName = "CreatePool"
)

func init() {
	registrar[EndPtCreatePool] = NewCreatePool
}

// CreatePool controls the creation of new pools. The authenticated user
// becomes the pool's owner and the presale starts paused.
type CreatePool struct {
	Owner    string
	SaleMint string
}

// NewCreatePool constructs and initializes the endpoint.
func NewCreatePool(
	r *http.Request,
) (Endpoint, error) {
	return &CreatePool{}, nil
}

// Validate validates the input parameters.
func (e *CreatePool) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Owner = authentication.Get(ctx).User.Token

	saleMint := r.PostFormValue("sale_mint")
	if !marketplace.IDRegexp.MatchString(saleMint) {
		return errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_mint_account",
			"The sale mint provided is invalid: %s.",
			saleMint,
		))
	}
	e.SaleMint = saleMint

	return nil
}

// Execute executes the endpoint.
func (e *CreatePool) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	mint, err := ledger.LoadMintByToken(ctx, e.SaleMint)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if mint == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_mint_account",
			"The sale mint provided does not exist: %s.",
			e.SaleMint,
		))
	}

	pool, err := model.CreatePool(ctx, e.Owner, e.SaleMint)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusCreated), &svc.Resp{
		"pool": format.JSONPtr(marketplace.NewPoolResource(ctx, pool)),
	}, nil
}
