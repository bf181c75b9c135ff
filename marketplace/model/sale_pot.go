package model

import (
	"context"
	"time"

	"github.com/curio/marketplace/lib/db"
	"github.com/curio/marketplace/lib/errors"
	"github.com/curio/marketplace/lib/livemode"
	"github.com/curio/marketplace/lib/token"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// SalePot is the royalty distribution ledger for one listing. A fresh pot is
// created at listing time snapshotting the NFT's royalty metadata; once the
// purchase completes (is_used) each party withdraws its share exactly once.
type SalePot struct {
	Token    string
	Created  time.Time
	Livemode bool

	SaleManager          string      `db:"sale_manager"` // SaleManager token.
	PoolPot              string      `db:"pool_pot"`     // Escrow currency account token.
	Price                int64
	IsUsed               bool        `db:"is_used"`
	IsPrimary            bool        `db:"is_primary"`
	Seller               string      // Seller address.
	SellerVerified       bool        `db:"seller_verified"`
	SellerFeeBasisPoints int64       `db:"seller_fee_basis_points"`
	Creators             CreatorList
}

// CreateSalePot creates and stores a new SalePot object.
func CreateSalePot(
	ctx context.Context,
	saleManager string,
	poolPot string,
	price int64,
	isPrimary bool,
	seller string,
	sellerFeeBasisPoints int64,
	creators CreatorList,
) (*SalePot, error) {
	pot := SalePot{
		Token:    token.New("pot"),
		Livemode: livemode.Get(ctx),
		Created:  time.Now().UTC(),

		SaleManager:          saleManager,
		PoolPot:              poolPot,
		Price:                price,
		IsUsed:               false,
		IsPrimary:            isPrimary,
		Seller:               seller,
		SellerVerified:       isPrimary,
		SellerFeeBasisPoints: sellerFeeBasisPoints,
		Creators:             creators,
	}

	ext := db.Ext(ctx)
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO sale_pots
  (token, livemode, created, sale_manager, pool_pot, price, is_used,
   is_primary, seller, seller_verified, seller_fee_basis_points, creators)
VALUES
  (:token, :livemode, :created, :sale_manager, :pool_pot, :price, :is_used,
   :is_primary, :seller, :seller_verified, :seller_fee_basis_points,
   :creators)
`, pot); err != nil {
		switch err := err.(type) {
		case *pq.Error:
			if err.Code.Name() == "unique_violation" {
				return nil, errors.Trace(ErrUniqueConstraintViolation{err})
			}
		case sqlite3.Error:
			if err.ExtendedCode == sqlite3.ErrConstraintUnique {
				return nil, errors.Trace(ErrUniqueConstraintViolation{err})
			}
		}
		return nil, errors.Trace(err)
	}

	return &pot, nil
}

// Save updates the object database representation with the in-memory values.
func (p *SalePot) Save(
	ctx context.Context,
) error {
	ext := db.Ext(ctx)
	_, err := sqlx.NamedExec(ext, `
UPDATE sale_pots
SET is_used = :is_used, seller_verified = :seller_verified,
    creators = :creators
WHERE token = :token
`, p)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// LoadSalePotByToken attempts to load a sale pot by its token.
func LoadSalePotByToken(
	ctx context.Context,
	potToken string,
) (*SalePot, error) {
	pot := SalePot{
		Token: potToken,
	}

	ext := db.Ext(ctx)
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM sale_pots
WHERE token = :token
`, pot); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&pot); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &pot, nil
}

// Claim computes the payout owed to claimant and flips the matching verified
// flags. On a primary sale the full price is split among creators by share;
// on a secondary sale the seller keeps the price net of the royalty fee and
// the fee itself is split among creators by share. A claimant that is both
// the seller and a creator collects both in one call. Integer floor division
// at each stage. Returns 0 if the claimant matches nothing unverified.
func (p *SalePot) Claim(
	claimant string,
) int64 {
	amount := int64(0)
	if p.IsPrimary {
		for i := range p.Creators {
			c := &p.Creators[i]
			if !c.Verified && c.Address == claimant {
				c.Verified = true
				amount = p.Price * int64(c.Share) / 100
				break
			}
		}
	} else {
		if !p.SellerVerified && p.Seller == claimant {
			amount = p.Price * (MaxBasisPoints - p.SellerFeeBasisPoints) /
				MaxBasisPoints
			p.SellerVerified = true
		}
		fee := p.Price * p.SellerFeeBasisPoints / MaxBasisPoints
		for i := range p.Creators {
			c := &p.Creators[i]
			if !c.Verified && c.Address == claimant {
				c.Verified = true
				amount += fee * int64(c.Share) / 100
				break
			}
		}
	}
	return amount
}
