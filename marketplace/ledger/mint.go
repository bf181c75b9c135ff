package ledger

import (
	"context"
	"time"

	"github.com/curio/marketplace/lib/db"
	"github.com/curio/marketplace/lib/errors"
	"github.com/curio/marketplace/lib/livemode"
	"github.com/curio/marketplace/lib/token"
	"github.com/curio/marketplace/marketplace/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
)

const (
	// MintMinDecimals is the minimal value for a mint's decimals.
	MintMinDecimals int8 = 0
	// MintMaxDecimals is the maximal value for a mint's decimals.
	MintMaxDecimals int8 = 24
)

// Mint represents a fungible or single-edition asset: its decimals, total
// supply and issuance authority.
type Mint struct {
	Token    string
	Created  time.Time
	Livemode bool

	Decimals  int8
	Supply    int64
	Authority string // Issuance authority address.
}

// CreateMint creates and stores a new Mint object with zero supply.
func CreateMint(
	ctx context.Context,
	authority string,
	decimals int8,
) (*Mint, error) {
	mint := Mint{
		Token:    token.New("mint"),
		Livemode: livemode.Get(ctx),
		Created:  time.Now().UTC(),

		Decimals:  decimals,
		Supply:    0,
		Authority: authority,
	}

	ext := db.Ext(ctx)
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO mints
  (token, livemode, created, decimals, supply, authority)
VALUES
  (:token, :livemode, :created, :decimals, :supply, :authority)
`, mint); err != nil {
		switch err := err.(type) {
		case *pq.Error:
			if err.Code.Name() == "unique_violation" {
				return nil, errors.Trace(model.ErrUniqueConstraintViolation{Err: err})
			}
		case sqlite3.Error:
			if err.ExtendedCode == sqlite3.ErrConstraintUnique {
				return nil, errors.Trace(model.ErrUniqueConstraintViolation{Err: err})
			}
		}
		return nil, errors.Trace(err)
	}

	return &mint, nil
}

// Save updates the object database representation with the in-memory values.
func (m *Mint) Save(
	ctx context.Context,
) error {
	ext := db.Ext(ctx)
	_, err := sqlx.NamedExec(ext, `
UPDATE mints
SET supply = :supply, authority = :authority
WHERE token = :token
`, m)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// LoadMintByToken attempts to load a mint by its token.
func LoadMintByToken(
	ctx context.Context,
	mintToken string,
) (*Mint, error) {
	mint := Mint{
		Token: mintToken,
	}

	ext := db.Ext(ctx)
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM mints
WHERE token = :token
`, mint); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&mint); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &mint, nil
}

// MintTo issues amount units of the mint to the destination address,
// creating its account if needed. The authority must be the mint's issuance
// authority. Supply and account are updated within the caller's transaction.
func MintTo(
	ctx context.Context,
	mintToken string,
	destination string,
	amount int64,
	auth Authority,
) error {
	mint, err := LoadMintByToken(ctx, mintToken)
	if err != nil {
		return errors.Trace(err)
	} else if mint == nil {
		return errors.Newf("Mint not found: %s", mintToken)
	}

	if auth.Address() != mint.Authority {
		return errors.Trace(ErrInvalidAuthority{auth.Address()})
	}
	if amount <= 0 {
		return errors.Newf("Invalid issuance amount: %d", amount)
	}

	account, err := LoadOrCreateAccountByMintOwner(ctx, mintToken, destination)
	if err != nil {
		return errors.Trace(err)
	}

	mint.Supply += amount
	account.Amount += amount

	if err := mint.Save(ctx); err != nil {
		return errors.Trace(err)
	}
	if err := account.Save(ctx); err != nil {
		return errors.Trace(err)
	}

	return nil
}
