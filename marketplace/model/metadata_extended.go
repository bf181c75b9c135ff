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

// MetadataExtended represents the per-NFT sale price cap for a pool. A
// max_price of 0 means the price is unbounded.
type MetadataExtended struct {
	Token    string
	Created  time.Time
	Livemode bool

	Pool     string // Pool token.
	NftMint  string `db:"nft_mint"` // NFT mint token.
	MaxPrice int64  `db:"max_price"`
}

// CreateMetadataExtended creates and stores a new MetadataExtended object.
// Only one can exist per (pool, nft_mint) pair.
func CreateMetadataExtended(
	ctx context.Context,
	pool string,
	nftMint string,
) (*MetadataExtended, error) {
	extended := MetadataExtended{
		Token:    token.New("extended"),
		Livemode: livemode.Get(ctx),
		Created:  time.Now().UTC(),

		Pool:     pool,
		NftMint:  nftMint,
		MaxPrice: 0,
	}

	ext := db.Ext(ctx)
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO metadata_extendeds
  (token, livemode, created, pool, nft_mint, max_price)
VALUES
  (:token, :livemode, :created, :pool, :nft_mint, :max_price)
`, extended); err != nil {
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

	return &extended, nil
}

// Save updates the object database representation with the in-memory values.
func (m *MetadataExtended) Save(
	ctx context.Context,
) error {
	ext := db.Ext(ctx)
	_, err := sqlx.NamedExec(ext, `
UPDATE metadata_extendeds
SET max_price = :max_price
WHERE token = :token
`, m)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// LoadMetadataExtendedByPoolNftMint attempts to load a metadata extension by
// its pool and NFT mint tokens.
func LoadMetadataExtendedByPoolNftMint(
	ctx context.Context,
	pool string,
	nftMint string,
) (*MetadataExtended, error) {
	extended := MetadataExtended{
		Pool:    pool,
		NftMint: nftMint,
	}

	ext := db.Ext(ctx)
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM metadata_extendeds
WHERE pool = :pool
  AND nft_mint = :nft_mint
`, extended); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&extended); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &extended, nil
}
