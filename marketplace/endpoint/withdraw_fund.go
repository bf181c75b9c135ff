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
	"goji.io/pat"
)

const (
	// EndPtWithdrawFund withdraws a claimant's payout from a sale pot.
	EndPtWithdrawFund EndPtName = "WithdrawFund"
)

func init() {
	registrar[EndPtWithdrawFund] = NewWithdrawFund
}

// WithdrawFund pays the authenticated claimant their share of a completed
// sale out of the escrowed proceeds. Each claimant can withdraw at most once
// per pot; a second attempt fails with invalid_amount. The payout is capped
// by the escrow account balance.
type WithdrawFund struct {
	Owner   string
	Pool    string
	NftMint string
	Pot     string
}

// NewWithdrawFund constructs and initializes the endpoint.
func NewWithdrawFund(
	r *http.Request,
) (Endpoint, error) {
	return &WithdrawFund{}, nil
}

// Validate validates the input parameters.
func (e *WithdrawFund) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Owner = authentication.Get(ctx).User.Token
	e.Pool = pat.Param(r, "pool")
	e.NftMint = pat.Param(r, "mint")

	// Past pots stay claimable after a relisting.
	e.Pot = r.PostFormValue("pot")

	return nil
}

// Execute executes the endpoint.
func (e *WithdrawFund) Execute(
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

	potToken := e.Pot
	if potToken == "" {
		potToken = manager.SalePot
	}

	pot, err := model.LoadSalePotByToken(ctx, potToken)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if pot == nil || pot.SaleManager != manager.Token || !pot.IsUsed {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_sale_state",
			"The NFT %s has no completed sale to withdraw from.",
			e.NftMint,
		))
	}

	amount := pot.Claim(e.Owner)
	if amount == 0 {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_amount",
			"You have no pending payout on the sale of NFT %s.",
			e.NftMint,
		))
	}

	account, err := ledger.LoadAccountByMintOwner(ctx,
		pool.SaleMint, manager.Token)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if account == nil {
		return nil, nil, errors.Newf(
			"Escrow account not found: %s", manager.PoolPot) // 500
	}

	// Cap the payout by what the escrow still holds.
	if amount > account.Amount {
		amount = account.Amount
	}

	if err := pot.Save(ctx); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	if amount > 0 {
		err = ledger.Transfer(ctx,
			pool.SaleMint, manager.Token, e.Owner, amount,
			ledger.Escrow(manager))
		if err != nil {
			return nil, nil, errors.Trace(err) // 500
		}
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"amount": format.JSONPtr(amount),
		"pot":    format.JSONPtr(marketplace.NewPotResource(ctx, pot)),
	}, nil
}
