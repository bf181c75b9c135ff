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

// Client represents a whitelisted bidder's remaining mint allowance for a
// pool. At most one client exists per (pool, owner) pair.
type Client struct {
	Token    string
	Created  time.Time
	Livemode bool

	Pool        string // Pool token.
	Owner       string // Bidder address.
	Amount      int64  // Remaining mintable count.
	Whitelisted bool
}

// CreateClient creates and stores a new Client object.
func CreateClient(
	ctx context.Context,
	pool string,
	owner string,
	amount int64,
	whitelisted bool,
) (*Client, error) {
	client := Client{
		Token:    token.New("client"),
		Livemode: livemode.Get(ctx),
		Created:  time.Now().UTC(),

		Pool:        pool,
		Owner:       owner,
		Amount:      amount,
		Whitelisted: whitelisted,
	}

	ext := db.Ext(ctx)
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO clients
  (token, livemode, created, pool, owner, amount, whitelisted)
VALUES
  (:token, :livemode, :created, :pool, :owner, :amount, :whitelisted)
`, client); err != nil {
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

	return &client, nil
}

// Save updates the object database representation with the in-memory values.
func (c *Client) Save(
	ctx context.Context,
) error {
	ext := db.Ext(ctx)
	_, err := sqlx.NamedExec(ext, `
UPDATE clients
SET amount = :amount, whitelisted = :whitelisted
WHERE token = :token
`, c)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// LoadClientByPoolOwner attempts to load a client by its pool token and owner
// address.
func LoadClientByPoolOwner(
	ctx context.Context,
	pool string,
	owner string,
) (*Client, error) {
	client := Client{
		Pool:  pool,
		Owner: owner,
	}

	ext := db.Ext(ctx)
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM clients
WHERE pool = :pool
  AND owner = :owner
`, client); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&client); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &client, nil
}
