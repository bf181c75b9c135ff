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
	// EndPtInitSaleManager initializes the sale manager of an NFT.
	EndPtInitSaleManager EndPtName = "InitSaleManager"
)

func init() {
	registrar[EndPtInitSaleManager] = NewInitSaleManager
}

// InitSaleManager initializes the unique sale manager of an NFT in a pool
// along with its escrow accounts (one for the NFT, one for the pool's
// currency). At most one sale manager can exist per (pool, NFT mint) pair.
type InitSaleManager struct {
	Owner   string
	Pool    string
	NftMint string
}

// NewInitSaleManager constructs and initializes the endpoint.
func NewInitSaleManager(
	r *http.Request,
) (Endpoint, error) {
	return &InitSaleManager{}, nil
}

// Validate validates the input parameters.
func (e *InitSaleManager) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Owner = authentication.Get(ctx).User.Token
	e.Pool = pat.Param(r, "pool")
	e.NftMint = pat.Param(r, "mint")

	return nil
}

// Execute executes the endpoint.
func (e *InitSaleManager) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	pool, err := loadPool(ctx, e.Pool)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	mint, err := ledger.LoadMintByToken(ctx, e.NftMint)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if mint == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_mint_account",
			"The NFT mint provided does not exist: %s.",
			e.NftMint,
		))
	}

	manager, err := model.CreateSaleManager(ctx, pool.Token, e.NftMint)
	if err != nil {
		switch errors.Cause(err).(type) {
		case model.ErrUniqueConstraintViolation:
			return nil, nil, errors.Trace(errors.NewUserErrorf(err,
				400, "already_trading",
				"The NFT %s already has a sale manager in pool %s.",
				e.NftMint, e.Pool,
			))
		default:
			return nil, nil, errors.Trace(err) // 500
		}
	}

	nftPot, err := ledger.LoadOrCreateAccountByMintOwner(ctx,
		e.NftMint, manager.Token)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}
	poolPot, err := ledger.LoadOrCreateAccountByMintOwner(ctx,
		pool.SaleMint, manager.Token)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	manager.NftPot = nftPot.Token
	manager.PoolPot = poolPot.Token
	if err := manager.Save(ctx); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusCreated), &svc.Resp{
		"sale": format.JSONPtr(marketplace.NewSaleResource(ctx, manager, nil)),
	}, nil
}
