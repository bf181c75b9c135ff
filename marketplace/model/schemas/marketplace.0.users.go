package schemas

import "github.com/curio/marketplace/lib/db"

const (
	usersSQL = `
CREATE TABLE IF NOT EXISTS users(
  token VARCHAR(256) NOT NULL,
  livemode BOOL NOT NULL,
  created TIMESTAMP NOT NULL,

  username VARCHAR(256) NOT NULL,      -- username
  password_hash VARCHAR(256) NOT NULL, -- scrypt hash of the password

  PRIMARY KEY(token),
  CONSTRAINT users_username_u UNIQUE (username)
);
`
)

func init() {
	db.RegisterSchema(
		"marketplace",
		"users",
		usersSQL,
	)
}
