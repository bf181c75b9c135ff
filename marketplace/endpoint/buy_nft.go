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
	// EndPtBuyNft buys a listed NFT.
	EndPtBuyNft EndPtName = "BuyNft"
)

func init() {
	registrar[EndPtBuyNft] = NewBuyNft
}

// BuyNft buys a listed NFT at its listing price. The payment moves into the
// sale manager's escrow, the NFT and its update authority move to the buyer,
// and the sale pot becomes eligible for withdrawals. Sellers cannot buy
// their own listing.
type BuyNft struct {
	Owner   string
	Pool    string
	NftMint string
}

// NewBuyNft constructs and initializes the endpoint.
func NewBuyNft(
	r *http.Request,
) (Endpoint, error) {
	return &BuyNft{}, nil
}

// Validate validates the input parameters.
func (e *BuyNft) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Owner = authentication.Get(ctx).User.Token
	e.Pool = pat.Param(r, "pool")
	e.NftMint = pat.Param(r, "mint")

	return nil
}

// Execute executes the endpoint.
func (e *BuyNft) Execute(
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

	if manager.SaleState != model.SaleStateListed {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_sale_state",
			"The NFT %s is not listed for sale.",
			e.NftMint,
		))
	}

	if e.Owner == manager.Seller {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_bidder",
			"You cannot buy your own listing of NFT %s.",
			e.NftMint,
		))
	}

	pot, err := model.LoadSalePotByToken(ctx, manager.SalePot)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if pot == nil {
		return nil, nil, errors.Newf(
			"Sale pot not found: %s", manager.SalePot) // 500
	}

	account, err := ledger.LoadAccountByMintOwner(ctx, pool.SaleMint, e.Owner)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if account == nil || account.Amount < manager.Price {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "not_enough_token_amount",
			"Your balance does not cover the price of NFT %s: %d.",
			e.NftMint, manager.Price,
		))
	}

	// Payment first, then the primary sale flag while the escrow still
	// holds the update authority, then the NFT and authority to the buyer.
	err = ledger.Transfer(ctx,
		pool.SaleMint, e.Owner, manager.Token, manager.Price,
		ledger.Signer(e.Owner))
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	err = ledger.SetPrimarySaleHappened(ctx,
		e.NftMint, ledger.Escrow(manager))
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	err = ledger.Transfer(ctx,
		e.NftMint, manager.Token, e.Owner, 1, ledger.Escrow(manager))
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	err = ledger.UpdateMetadataAuthority(ctx,
		e.NftMint, e.Owner, ledger.Escrow(manager))
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	manager.SaleState = model.SaleStateSold
	if err := manager.Save(ctx); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	pot.IsUsed = true
	if err := pot.Save(ctx); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"sale": format.JSONPtr(marketplace.NewSaleResource(ctx, manager, pot)),
	}, nil
}
