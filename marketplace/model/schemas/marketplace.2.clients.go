package schemas

import "github.com/curio/marketplace/lib/db"

const (
	clientsSQL = `
CREATE TABLE IF NOT EXISTS clients(
  token VARCHAR(256) NOT NULL,
  livemode BOOL NOT NULL,
  created TIMESTAMP NOT NULL,

  pool VARCHAR(256) NOT NULL,  -- pool token
  owner VARCHAR(256) NOT NULL, -- bidder address
  amount BIGINT NOT NULL,      -- remaining mintable count
  whitelisted BOOL NOT NULL,

  PRIMARY KEY(token),
  CONSTRAINT clients_pool_owner_u UNIQUE (pool, owner)
);
`
)

func init() {
	db.RegisterSchema(
		"marketplace",
		"clients",
		clientsSQL,
	)
}
