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

// SaleManager is the singleton escrow state machine for one (pool, nft_mint)
// pair. The unique constraint on (pool, nft_mint) enforces the singleton
// invariant; its token is the address escrow custody accounts are held
// under.
type SaleManager struct {
	Token    string
	Created  time.Time
	Livemode bool

	Pool      string    // Pool token.
	NftMint   string    `db:"nft_mint"` // NFT mint token.
	Seller    string    // Seller address of the current/last listing.
	NftPot    string    `db:"nft_pot"`  // Escrow NFT account token.
	PoolPot   string    `db:"pool_pot"` // Escrow currency account token.
	SalePot   string    `db:"sale_pot"` // Current SalePot token.
	Price     int64
	SaleState SaleState `db:"sale_state"`
}

// CreateSaleManager creates and stores a new SaleManager object at state
// Unlisted. Fails with ErrUniqueConstraintViolation if one already exists for
// the (pool, nft_mint) pair.
func CreateSaleManager(
	ctx context.Context,
	pool string,
	nftMint string,
) (*SaleManager, error) {
	manager := SaleManager{
		Token:    token.New("manager"),
		Livemode: livemode.Get(ctx),
		Created:  time.Now().UTC(),

		Pool:      pool,
		NftMint:   nftMint,
		Seller:    "",
		NftPot:    "",
		PoolPot:   "",
		SalePot:   "",
		Price:     0,
		SaleState: SaleStateUnlisted,
	}

	ext := db.Ext(ctx)
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO sale_managers
  (token, livemode, created, pool, nft_mint, seller, nft_pot, pool_pot,
   sale_pot, price, sale_state)
VALUES
  (:token, :livemode, :created, :pool, :nft_mint, :seller, :nft_pot,
   :pool_pot, :sale_pot, :price, :sale_state)
`, manager); err != nil {
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

	return &manager, nil
}

// Save updates the object database representation with the in-memory values.
func (m *SaleManager) Save(
	ctx context.Context,
) error {
	ext := db.Ext(ctx)
	_, err := sqlx.NamedExec(ext, `
UPDATE sale_managers
SET seller = :seller, nft_pot = :nft_pot, pool_pot = :pool_pot,
    sale_pot = :sale_pot, price = :price, sale_state = :sale_state
WHERE token = :token
`, m)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// LoadSaleManagerByPoolNftMint attempts to load a sale manager by its pool
// and NFT mint tokens.
func LoadSaleManagerByPoolNftMint(
	ctx context.Context,
	pool string,
	nftMint string,
) (*SaleManager, error) {
	manager := SaleManager{
		Pool:    pool,
		NftMint: nftMint,
	}

	ext := db.Ext(ctx)
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM sale_managers
WHERE pool = :pool
  AND nft_mint = :nft_mint
`, manager); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&manager); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &manager, nil
}
