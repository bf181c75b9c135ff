package schemas

import "github.com/curio/marketplace/lib/db"

const (
	salePotsSQL = `
CREATE TABLE IF NOT EXISTS sale_pots(
  token VARCHAR(256) NOT NULL,
  livemode BOOL NOT NULL,
  created TIMESTAMP NOT NULL,

  sale_manager VARCHAR(256) NOT NULL, -- sale manager token
  pool_pot VARCHAR(256) NOT NULL,     -- escrow currency account token
  price BIGINT NOT NULL,
  is_used BOOL NOT NULL,              -- purchase completed
  is_primary BOOL NOT NULL,
  seller VARCHAR(256) NOT NULL,       -- seller address
  seller_verified BOOL NOT NULL,
  seller_fee_basis_points BIGINT NOT NULL,
  creators VARCHAR(2048) NOT NULL,    -- JSON creator list (bounded)

  PRIMARY KEY(token)
);
`
)

func init() {
	db.RegisterSchema(
		"marketplace",
		"sale_pots",
		salePotsSQL,
	)
}
