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
	// EndPtUpdateWhitelist updates a bidder's whitelist entry.
	EndPtUpdateWhitelist EndPtName = "UpdateWhitelist"
)

func init() {
	registrar[EndPtUpdateWhitelist] = NewUpdateWhitelist
}

// UpdateWhitelist updates the mintable amount or whitelisted flag of an
// existing whitelist entry. Only the pool owner can update, and only while
// the presale is not live.
type UpdateWhitelist struct {
	Owner       string
	Pool        string
	Bidder      string
	Amount      int64
	Whitelisted bool
}

// NewUpdateWhitelist constructs and initializes the endpoint.
func NewUpdateWhitelist(
	r *http.Request,
) (Endpoint, error) {
	return &UpdateWhitelist{}, nil
}

// Validate validates the input parameters.
func (e *UpdateWhitelist) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Owner = authentication.Get(ctx).User.Token
	e.Pool = pat.Param(r, "pool")
	e.Bidder = pat.Param(r, "bidder")

	amount, err := ValidateAmount(ctx, r.PostFormValue("amount"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Amount = *amount

	whitelisted, err := ValidateBool(ctx,
		"whitelisted", r.PostFormValue("whitelisted"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Whitelisted = *whitelisted

	return nil
}

// Execute executes the endpoint.
func (e *UpdateWhitelist) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	pool, err := loadOwnedPool(ctx, e.Pool, e.Owner)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	if pool.PresaleLive {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "presale_live",
			"The whitelist of pool %s cannot be altered while its presale "+
				"is live.",
			e.Pool,
		))
	}

	client, err := model.LoadClientByPoolOwner(ctx, pool.Token, e.Bidder)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if client == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "invalid_bidder",
			"The bidder %s is not registered on pool %s.",
			e.Bidder, e.Pool,
		))
	}

	client.Amount = e.Amount
	client.Whitelisted = e.Whitelisted
	if err := client.Save(ctx); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"client": format.JSONPtr(marketplace.NewClientResource(ctx, client)),
	}, nil
}
