package schemas

import "github.com/curio/marketplace/lib/db"

const (
	accountsSQL = `
CREATE TABLE IF NOT EXISTS accounts(
  token VARCHAR(256) NOT NULL,
  livemode BOOL NOT NULL,
  created TIMESTAMP NOT NULL,

  mint VARCHAR(256) NOT NULL,  -- mint token
  owner VARCHAR(256) NOT NULL, -- holder address
  amount BIGINT NOT NULL,

  PRIMARY KEY(token),
  CONSTRAINT accounts_mint_owner_u UNIQUE (mint, owner)
);
`
)

func init() {
	db.RegisterSchema(
		"marketplace",
		"accounts",
		accountsSQL,
	)
}
