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
	// EndPtMintNft mints an NFT as part of a pool's primary sale.
	EndPtMintNft EndPtName = "MintNft"
)

func init() {
	registrar[EndPtMintNft] = NewMintNft
}

// MintNft mints the single edition of an NFT to a whitelisted bidder and
// attaches its metadata. The NFT's mint must be fresh (0 decimals, no supply)
// and controlled by the bidder. Each mint decrements the bidder's remaining
// whitelist allowance.
type MintNft struct {
	Owner                string
	Pool                 string
	NftMint              string
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints int64
	Creators             model.CreatorList
	IsMutable            bool
}

// NewMintNft constructs and initializes the endpoint.
func NewMintNft(
	r *http.Request,
) (Endpoint, error) {
	return &MintNft{}, nil
}

// Validate validates the input parameters.
func (e *MintNft) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Owner = authentication.Get(ctx).User.Token
	e.Pool = pat.Param(r, "pool")
	e.NftMint = pat.Param(r, "mint")

	e.Name = r.PostFormValue("name")
	e.Symbol = r.PostFormValue("symbol")
	e.URI = r.PostFormValue("uri")

	fee, err := ValidateFeeBasisPoints(ctx,
		r.PostFormValue("seller_fee_basis_points"))
	if err != nil {
		return errors.Trace(err)
	}
	e.SellerFeeBasisPoints = *fee

	creators := r.PostFormValue("creators")
	if creators == "" {
		creators = "[]"
	}
	list, err := ValidateCreators(ctx, creators)
	if err != nil {
		return errors.Trace(err)
	}
	e.Creators = list

	isMutable := r.PostFormValue("is_mutable")
	if isMutable == "" {
		isMutable = "true"
	}
	mutable, err := ValidateBool(ctx, "is_mutable", isMutable)
	if err != nil {
		return errors.Trace(err)
	}
	e.IsMutable = *mutable

	return nil
}

// Execute executes the endpoint.
func (e *MintNft) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	pool, err := loadPool(ctx, e.Pool)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	if !pool.PresaleLive {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "presale_not_live",
			"The presale of pool %s is not live.",
			e.Pool,
		))
	}

	client, err := model.LoadClientByPoolOwner(ctx, pool.Token, e.Owner)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if client == nil || !client.Whitelisted {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "not_whitelisted",
			"You are not whitelisted on pool %s.",
			e.Pool,
		))
	}

	if client.Amount <= 0 {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "mint_amount_is_zero",
			"Your whitelist allowance on pool %s is exhausted.",
			e.Pool,
		))
	}

	mint, err := ledger.LoadMintByToken(ctx, e.NftMint)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if mint == nil || mint.Decimals != 0 || mint.Supply != 0 {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_mint_account",
			"The NFT mint provided must exist with 0 decimals and no "+
				"supply: %s.",
			e.NftMint,
		))
	}

	if mint.Authority != e.Owner {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_mint_account",
			"You are not the issuance authority of mint %s.",
			e.NftMint,
		))
	}

	err = ledger.MintTo(ctx, e.NftMint, e.Owner, 1, ledger.Signer(e.Owner))
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	metadata, err := ledger.CreateMetadata(ctx,
		e.NftMint, e.Name, e.Symbol, e.URI,
		e.SellerFeeBasisPoints, e.Creators, e.IsMutable, e.Owner)
	if err != nil {
		switch errors.Cause(err).(type) {
		case model.ErrUniqueConstraintViolation:
			return nil, nil, errors.Trace(errors.NewUserErrorf(err,
				400, "invalid_mint_account",
				"The NFT mint %s already carries metadata.",
				e.NftMint,
			))
		default:
			return nil, nil, errors.Trace(err) // 500
		}
	}

	extended, err := model.CreateMetadataExtended(ctx, pool.Token, e.NftMint)
	if err != nil {
		switch errors.Cause(err).(type) {
		case model.ErrUniqueConstraintViolation:
			return nil, nil, errors.Trace(errors.NewUserErrorf(err,
				400, "invalid_mint_account",
				"The NFT mint %s was already minted in pool %s.",
				e.NftMint, e.Pool,
			))
		default:
			return nil, nil, errors.Trace(err) // 500
		}
	}

	client.Amount--
	if err := client.Save(ctx); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusCreated), &svc.Resp{
		"nft": format.JSONPtr(marketplace.NewNftResource(ctx, extended)),
		"metadata": format.JSONPtr(
			marketplace.NewMetadataResource(ctx, metadata)),
	}, nil
}
