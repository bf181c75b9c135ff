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

// Pool represents a marketplace instance: an owner, a presale toggle and the
// currency mint sales are denominated in.
type Pool struct {
	Token    string
	Created  time.Time
	Livemode bool

	Owner       string // Owner address.
	PresaleLive bool   `db:"presale_live"`
	SaleMint    string `db:"sale_mint"` // Currency mint token.
}

// CreatePool creates and stores a new Pool object.
func CreatePool(
	ctx context.Context,
	owner string,
	saleMint string,
) (*Pool, error) {
	pool := Pool{
		Token:    token.New("pool"),
		Livemode: livemode.Get(ctx),
		Created:  time.Now().UTC(),

		Owner:       owner,
		PresaleLive: false,
		SaleMint:    saleMint,
	}

	ext := db.Ext(ctx)
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO pools
  (token, livemode, created, owner, presale_live, sale_mint)
VALUES
  (:token, :livemode, :created, :owner, :presale_live, :sale_mint)
`, pool); err != nil {
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

	return &pool, nil
}

// Save updates the object database representation with the in-memory values.
func (p *Pool) Save(
	ctx context.Context,
) error {
	ext := db.Ext(ctx)
	_, err := sqlx.NamedExec(ext, `
UPDATE pools
SET owner = :owner, presale_live = :presale_live
WHERE token = :token
`, p)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// LoadPoolByToken attempts to load a pool by its token.
func LoadPoolByToken(
	ctx context.Context,
	poolToken string,
) (*Pool, error) {
	pool := Pool{
		Token: poolToken,
	}

	ext := db.Ext(ctx)
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM pools
WHERE token = :token
`, pool); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&pool); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &pool, nil
}
