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
	"goji.io/pat"
)

const (
	// EndPtIssue issues units of a mint to an address.
	EndPtIssue EndPtName = "Issue"
)

func init() {
	registrar[EndPtIssue] = NewIssue
}

// Issue controls the issuance of mint units. Only the mint's issuance
// authority can issue.
type Issue struct {
	Owner       string
	Mint        string
	Destination string
	Amount      int64
}

// NewIssue constructs and initializes the endpoint.
func NewIssue(
	r *http.Request,
) (Endpoint, error) {
	return &Issue{}, nil
}

// Validate validates the input parameters.
func (e *Issue) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Owner = authentication.Get(ctx).User.Token

	mint := pat.Param(r, "mint")
	if !marketplace.IDRegexp.MatchString(mint) {
		return errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_mint_account",
			"The mint provided is invalid: %s.",
			mint,
		))
	}
	e.Mint = mint

	e.Destination = r.PostFormValue("destination")
	if e.Destination == "" {
		e.Destination = e.Owner
	}

	amount, err := ValidateAmount(ctx, r.PostFormValue("amount"))
	if err != nil {
		return errors.Trace(err)
	}
	if *amount == 0 {
		return errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_amount",
			"The amount provided is invalid: 0. Issuances must be "+
				"strictly positive.",
		))
	}
	e.Amount = *amount

	return nil
}

// Execute executes the endpoint.
func (e *Issue) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	mint, err := ledger.LoadMintByToken(ctx, e.Mint)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if mint == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "invalid_mint_account",
			"The mint you are trying to issue does not exist: %s.",
			e.Mint,
		))
	}

	if mint.Authority != e.Owner {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_mint_account",
			"You are not the issuance authority of mint %s.",
			e.Mint,
		))
	}

	err = ledger.MintTo(ctx,
		e.Mint, e.Destination, e.Amount, ledger.Signer(e.Owner))
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	account, err := ledger.LoadAccountByMintOwner(ctx, e.Mint, e.Destination)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"balance": format.JSONPtr(marketplace.NewBalanceResource(ctx, account)),
	}, nil
}
