package endpoint

import (
	"context"

	"github.com/curio/marketplace/lib/errors"
	"github.com/curio/marketplace/marketplace/model"
)

// loadPool loads the pool with the specified token, erroring with
// invalid_pool_account if it does not exist.
func loadPool(
	ctx context.Context,
	token string,
) (*model.Pool, error) {
	pool, err := model.LoadPoolByToken(ctx, token)
	if err != nil {
		return nil, errors.Trace(err) // 500
	} else if pool == nil {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "invalid_pool_account",
			"The pool you are trying to operate on does not exist: %s.",
			token,
		))
	}
	return pool, nil
}

// loadOwnedPool loads the pool with the specified token and checks that the
// specified address owns it.
func loadOwnedPool(
	ctx context.Context,
	token string,
	owner string,
) (*model.Pool, error) {
	pool, err := loadPool(ctx, token)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if pool.Owner != owner {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_pool_account",
			"You are not the owner of pool %s.",
			token,
		))
	}
	return pool, nil
}

// loadSaleManager loads the sale manager for the specified pool and NFT
// mint, erroring with invalid_sale_state if none exists.
func loadSaleManager(
	ctx context.Context,
	pool string,
	nftMint string,
) (*model.SaleManager, error) {
	manager, err := model.LoadSaleManagerByPoolNftMint(ctx, pool, nftMint)
	if err != nil {
		return nil, errors.Trace(err) // 500
	} else if manager == nil {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "invalid_sale_state",
			"No sale manager exists for NFT %s in pool %s.",
			nftMint, pool,
		))
	}
	return manager, nil
}
