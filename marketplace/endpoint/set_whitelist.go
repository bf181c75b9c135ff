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
	// EndPtSetWhitelist registers a bidder on a pool's whitelist.
	EndPtSetWhitelist EndPtName = "SetWhitelist"
)

func init() {
	registrar[EndPtSetWhitelist] = NewSetWhitelist
}

// SetWhitelist registers a bidder on a pool's whitelist with a mintable
// amount. Only the pool owner can whitelist, and only while the presale is
// not live.
type SetWhitelist struct {
	Owner       string
	Pool        string
	Bidder      string
	Amount      int64
	Whitelisted bool
}

// NewSetWhitelist constructs and initializes the endpoint.
func NewSetWhitelist(
	r *http.Request,
) (Endpoint, error) {
	return &SetWhitelist{}, nil
}

// Validate validates the input parameters.
func (e *SetWhitelist) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Owner = authentication.Get(ctx).User.Token
	e.Pool = pat.Param(r, "pool")

	bidder := r.PostFormValue("bidder")
	if bidder == "" {
		return errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_bidder",
			"The bidder provided is empty.",
		))
	}
	e.Bidder = bidder

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
func (e *SetWhitelist) Execute(
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

	client, err := model.CreateClient(ctx,
		pool.Token, e.Bidder, e.Amount, e.Whitelisted)
	if err != nil {
		switch err := errors.Cause(err).(type) {
		case model.ErrUniqueConstraintViolation:
			return nil, nil, errors.Trace(errors.NewUserErrorf(err,
				400, "invalid_bidder",
				"The bidder %s is already registered on pool %s.",
				e.Bidder, e.Pool,
			))
		default:
			return nil, nil, errors.Trace(err) // 500
		}
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusCreated), &svc.Resp{
		"client": format.JSONPtr(marketplace.NewClientResource(ctx, client)),
	}, nil
}
