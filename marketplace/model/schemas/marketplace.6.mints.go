package schemas

import "github.com/curio/marketplace/lib/db"

const (
	mintsSQL = `
CREATE TABLE IF NOT EXISTS mints(
  token VARCHAR(256) NOT NULL,
  livemode BOOL NOT NULL,
  created TIMESTAMP NOT NULL,

  decimals SMALLINT NOT NULL,
  supply BIGINT NOT NULL,
  authority VARCHAR(256) NOT NULL, -- issuance authority address

  PRIMARY KEY(token)
);
`
)

func init() {
	db.RegisterSchema(
		"marketplace",
		"mints",
		mintsSQL,
	)
}
