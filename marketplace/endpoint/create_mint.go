package endpoint

import (
	"context"
	"net/http"
	"strconv"

	"github.com/curio/marketplace/lib/db"
	"github.com/curio/marketplace/lib/errors"
	"github.com/curio/marketplace/lib/format"
	"github.com/curio/marketplace/lib/ptr"
	"github.com/curio/marketplace/lib/svc"
	"github.com/curio/marketplace/marketplace"
	"github.com/curio/marketplace/marketplace/ledger"
	"github.com/curio/marketplace/marketplace/lib/authentication"
)

const (
	// EndPtCreateMint creates a new mint.
	EndPtCreateMint EndPtName = "CreateMint"
)

func init() {
	registrar[EndPtCreateMint] = NewCreateMint
}

// CreateMint controls the creation of new mints. The authenticated user
// becomes the mint's issuance authority.
type CreateMint struct {
	Owner    string
	Decimals int8
}

// NewCreateMint constructs and initializes the endpoint.
func NewCreateMint(
	r *http.Request,
) (Endpoint, error) {
	return &CreateMint{}, nil
}

// Validate validates the input parameters.
func (e *CreateMint) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Owner = authentication.Get(ctx).User.Token

	decimals, err := strconv.ParseInt(r.PostFormValue("decimals"), 10, 8)
	if err != nil ||
		int8(decimals) < ledger.MintMinDecimals ||
		int8(decimals) > ledger.MintMaxDecimals {
		return errors.Trace(errors.NewUserErrorf(err,
			400, "invalid_decimals",
			"The decimals provided are invalid: %s. Decimals must be an "+
				"integer between %d and %d.",
			r.PostFormValue("decimals"),
			ledger.MintMinDecimals, ledger.MintMaxDecimals,
		))
	}
	e.Decimals = int8(decimals)

	return nil
}

// Execute executes the endpoint.
func (e *CreateMint) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	mint, err := ledger.CreateMint(ctx, e.Owner, e.Decimals)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusCreated), &svc.Resp{
		"mint": format.JSONPtr(marketplace.NewMintResource(ctx, mint)),
	}, nil
}
