package schemas

import "github.com/curio/marketplace/lib/db"

const (
	saleManagersSQL = `
CREATE TABLE IF NOT EXISTS sale_managers(
  token VARCHAR(256) NOT NULL,
  livemode BOOL NOT NULL,
  created TIMESTAMP NOT NULL,

  pool VARCHAR(256) NOT NULL,     -- pool token
  nft_mint VARCHAR(256) NOT NULL, -- NFT mint token
  seller VARCHAR(256) NOT NULL,   -- seller address
  nft_pot VARCHAR(256) NOT NULL,  -- escrow NFT account token
  pool_pot VARCHAR(256) NOT NULL, -- escrow currency account token
  sale_pot VARCHAR(256) NOT NULL, -- current sale pot token
  price BIGINT NOT NULL,
  sale_state SMALLINT NOT NULL,   -- 0 unlisted, 1 listed, 2 sold

  PRIMARY KEY(token),
  CONSTRAINT sale_managers_pool_nft_mint_u UNIQUE (pool, nft_mint)
);
`
)

func init() {
	db.RegisterSchema(
		"marketplace",
		"sale_managers",
		saleManagersSQL,
	)
}
