package schemas

import "github.com/curio/marketplace/lib/db"

const (
	metadataExtendedsSQL = `
CREATE TABLE IF NOT EXISTS metadata_extendeds(
  token VARCHAR(256) NOT NULL,
  livemode BOOL NOT NULL,
  created TIMESTAMP NOT NULL,

  pool VARCHAR(256) NOT NULL,     -- pool token
  nft_mint VARCHAR(256) NOT NULL, -- NFT mint token
  max_price BIGINT NOT NULL,      -- sale price cap (0 = unbounded)

  PRIMARY KEY(token),
  CONSTRAINT metadata_extendeds_pool_nft_mint_u UNIQUE (pool, nft_mint)
);
`
)

func init() {
	db.RegisterSchema(
		"marketplace",
		"metadata_extendeds",
		metadataExtendedsSQL,
	)
}
