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
	"goji.io/pat"
)

const (
	// EndPtRetrieveBalance retrieves a balance.
	EndPtRetrieveBalance EndPtName = "RetrieveBalance"
)

func init() {
	registrar[EndPtRetrieveBalance] = NewRetrieveBalance
}

// RetrieveBalance retrieves the account balance of an address for a mint.
type RetrieveBalance struct {
	Mint    string
	Address string
}

// NewRetrieveBalance constructs and initializes the endpoint.
func NewRetrieveBalance(
	r *http.Request,
) (Endpoint, error) {
	return &RetrieveBalance{}, nil
}

// Validate validates the input parameters.
func (e *RetrieveBalance) Validate(
	r *http.Request,
) error {
	e.Mint = pat.Param(r, "mint")
	e.Address = pat.Param(r, "address")

	return nil
}

// Execute executes the endpoint.
func (e *RetrieveBalance) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	account, err := ledger.LoadAccountByMintOwner(ctx, e.Mint, e.Address)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if account == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "invalid_token_account",
			"No account exists for mint %s and address %s.",
			e.Mint, e.Address,
		))
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"balance": format.JSONPtr(marketplace.NewBalanceResource(ctx, account)),
	}, nil
}
