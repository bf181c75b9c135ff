package schemas

import "github.com/curio/marketplace/lib/db"

const (
	poolsSQL = `
CREATE TABLE IF NOT EXISTS pools(
  token VARCHAR(256) NOT NULL,
  livemode BOOL NOT NULL,
  created TIMESTAMP NOT NULL,

  owner VARCHAR(256) NOT NULL,     -- owner address
  presale_live BOOL NOT NULL,      -- presale toggle
  sale_mint VARCHAR(256) NOT NULL, -- currency mint token

  PRIMARY KEY(token)
);
`
)

func init() {
	db.RegisterSchema(
		"marketplace",
		"pools",
		poolsSQL,
	)
}
