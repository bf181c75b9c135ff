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

// Account represents a holding of one mint by one address. Only one account
// exists per (mint, owner) pair.
type Account struct {
	Token    string
	Created  time.Time
	Livemode bool

	Mint   string // Mint token.
	Owner  string // Holder address.
	Amount int64
}

// CreateAccount creates and stores a new Account object with a zero amount.
func CreateAccount(
	ctx context.Context,
	mint string,
	owner string,
) (*Account, error) {
	account := Account{
		Token:    token.New("account"),
		Livemode: livemode.Get(ctx),
		Created:  time.Now().UTC(),

		Mint:   mint,
		Owner:  owner,
		Amount: 0,
	}

	ext := db.Ext(ctx)
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO accounts
  (token, livemode, created, mint, owner, amount)
VALUES
  (:token, :livemode, :created, :mint, :owner, :amount)
`, account); err != nil {
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

	return &account, nil
}

// Save updates the object database representation with the in-memory values.
func (a *Account) Save(
	ctx context.Context,
) error {
	ext := db.Ext(ctx)
	_, err := sqlx.NamedExec(ext, `
UPDATE accounts
SET amount = :amount
WHERE token = :token
`, a)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// LoadAccountByMintOwner attempts to load an account by its mint token and
// owner address.
func LoadAccountByMintOwner(
	ctx context.Context,
	mint string,
	owner string,
) (*Account, error) {
	account := Account{
		Mint:  mint,
		Owner: owner,
	}

	ext := db.Ext(ctx)
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM accounts
WHERE mint = :mint
  AND owner = :owner
`, account); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&account); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &account, nil
}

// LoadOrCreateAccountByMintOwner loads an existing account for the specified
// mint and owner or creates one (with a 0 amount) if it does not exist.
func LoadOrCreateAccountByMintOwner(
	ctx context.Context,
	mint string,
	owner string,
) (*Account, error) {
	account, err := LoadAccountByMintOwner(ctx, mint, owner)
	if err != nil {
		return nil, errors.Trace(err)
	} else if account == nil {
		account, err = CreateAccount(ctx, mint, owner)
		if err != nil {
			return nil, errors.Trace(err)
		}
	}
	return account, nil
}

// Transfer atomically debits amount units of the mint from the source
// address and credits them to the destination address within the caller's
// transaction. The authority must act for the source address. Fails without
// effect if the source account is missing or underfunded.
func Transfer(
	ctx context.Context,
	mintToken string,
	source string,
	destination string,
	amount int64,
	auth Authority,
) error {
	if auth.Address() != source {
		return errors.Trace(ErrInvalidAuthority{auth.Address()})
	}
	if amount <= 0 {
		return errors.Newf("Invalid transfer amount: %d", amount)
	}

	srcAccount, err := LoadAccountByMintOwner(ctx, mintToken, source)
	if err != nil {
		return errors.Trace(err)
	} else if srcAccount == nil {
		return errors.Newf(
			"No account for mint %s and owner %s", mintToken, source)
	}
	if srcAccount.Amount < amount {
		return errors.Trace(ErrNotEnoughFunds{srcAccount.Token, amount})
	}

	dstAccount, err := LoadOrCreateAccountByMintOwner(ctx,
		mintToken, destination)
	if err != nil {
		return errors.Trace(err)
	}

	srcAccount.Amount -= amount
	dstAccount.Amount += amount

	if err := srcAccount.Save(ctx); err != nil {
		return errors.Trace(err)
	}
	if err := dstAccount.Save(ctx); err != nil {
		return errors.Trace(err)
	}

	return nil
}
