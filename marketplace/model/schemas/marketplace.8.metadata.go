package schemas

import "github.com/curio/marketplace/lib/db"

const (
	metadataSQL = `
CREATE TABLE IF NOT EXISTS metadata(
  token VARCHAR(256) NOT NULL,
  livemode BOOL NOT NULL,
  created TIMESTAMP NOT NULL,

  nft_mint VARCHAR(256) NOT NULL, -- NFT mint token
  name VARCHAR(256) NOT NULL,
  symbol VARCHAR(32) NOT NULL,
  uri VARCHAR(1024) NOT NULL,
  seller_fee_basis_points BIGINT NOT NULL,
  creators VARCHAR(2048) NOT NULL,         -- JSON creator list (bounded)
  is_mutable BOOL NOT NULL,
  master_edition BOOL NOT NULL,            -- singleton edition marker
  primary_sale_happened BOOL NOT NULL,
  update_authority VARCHAR(256) NOT NULL,  -- current update authority address

  PRIMARY KEY(token),
  CONSTRAINT metadata_nft_mint_u UNIQUE (nft_mint)
);
`
)

func init() {
	db.RegisterSchema(
		"marketplace",
		"metadata",
		metadataSQL,
	)
}
