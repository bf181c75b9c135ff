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

// Metadata represents the descriptive and royalty record associated with an
// NFT mint: name, royalty schedule, creator list, mutability, the master
// edition marker and the "primary sale happened" flag.
type Metadata struct {
	Token    string
	Created  time.Time
	Livemode bool

	NftMint              string            `db:"nft_mint"`
	Name                 string
	Symbol               string
	URI                  string            `db:"uri"`
	SellerFeeBasisPoints int64             `db:"seller_fee_basis_points"`
	Creators             model.CreatorList
	IsMutable            bool              `db:"is_mutable"`
	MasterEdition        bool              `db:"master_edition"`
	PrimarySaleHappened  bool              `db:"primary_sale_happened"`
	UpdateAuthority      string            `db:"update_authority"`
}

// CreateMetadata creates and stores a new Metadata object. Only one can
// exist per NFT mint.
func CreateMetadata(
	ctx context.Context,
	nftMint string,
	name string,
	symbol string,
	uri string,
	sellerFeeBasisPoints int64,
	creators model.CreatorList,
	isMutable bool,
	updateAuthority string,
) (*Metadata, error) {
	metadata := Metadata{
		Token:    token.New("metadata"),
		Livemode: livemode.Get(ctx),
		Created:  time.Now().UTC(),

		NftMint:              nftMint,
		Name:                 name,
		Symbol:               symbol,
		URI:                  uri,
		SellerFeeBasisPoints: sellerFeeBasisPoints,
		Creators:             creators,
		IsMutable:            isMutable,
		MasterEdition:        true,
		PrimarySaleHappened:  false,
		UpdateAuthority:      updateAuthority,
	}

	ext := db.Ext(ctx)
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO metadata
  (token, livemode, created, nft_mint, name, symbol, uri,
   seller_fee_basis_points, creators, is_mutable, master_edition,
   primary_sale_happened, update_authority)
VALUES
  (:token, :livemode, :created, :nft_mint, :name, :symbol, :uri,
   :seller_fee_basis_points, :creators, :is_mutable, :master_edition,
   :primary_sale_happened, :update_authority)
`, metadata); err != nil {
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

	return &metadata, nil
}

// Save updates the object database representation with the in-memory values
// and invalidates any cached copy.
func (m *Metadata) Save(
	ctx context.Context,
) error {
	ext := db.Ext(ctx)
	_, err := sqlx.NamedExec(ext, `
UPDATE metadata
SET primary_sale_happened = :primary_sale_happened,
    update_authority = :update_authority
WHERE token = :token
`, m)
	if err != nil {
		return errors.Trace(err)
	}

	invalidateMetadata(m.NftMint)

	return nil
}

// LoadMetadataByNftMint attempts to load a metadata record by its NFT mint
// token.
func LoadMetadataByNftMint(
	ctx context.Context,
	nftMint string,
) (*Metadata, error) {
	metadata := Metadata{
		NftMint: nftMint,
	}

	ext := db.Ext(ctx)
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM metadata
WHERE nft_mint = :nft_mint
`, metadata); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&metadata); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &metadata, nil
}

// UpdateMetadataAuthority moves the update authority over the NFT's metadata
// to a new address. The provided authority must be the current update
// authority.
func UpdateMetadataAuthority(
	ctx context.Context,
	nftMint string,
	newAuthority string,
	auth Authority,
) error {
	metadata, err := LoadMetadataByNftMint(ctx, nftMint)
	if err != nil {
		return errors.Trace(err)
	} else if metadata == nil {
		return errors.Newf("Metadata not found: %s", nftMint)
	}

	if auth.Address() != metadata.UpdateAuthority {
		return errors.Trace(ErrInvalidAuthority{auth.Address()})
	}

	metadata.UpdateAuthority = newAuthority
	if err := metadata.Save(ctx); err != nil {
		return errors.Trace(err)
	}

	return nil
}

// SetPrimarySaleHappened flags the NFT's metadata as having completed its
// primary sale. The provided authority must be the current update authority.
func SetPrimarySaleHappened(
	ctx context.Context,
	nftMint string,
	auth Authority,
) error {
	metadata, err := LoadMetadataByNftMint(ctx, nftMint)
	if err != nil {
		return errors.Trace(err)
	} else if metadata == nil {
		return errors.Newf("Metadata not found: %s", nftMint)
	}

	if auth.Address() != metadata.UpdateAuthority {
		return errors.Trace(ErrInvalidAuthority{auth.Address()})
	}

	metadata.PrimarySaleHappened = true
	if err := metadata.Save(ctx); err != nil {
		return errors.Trace(err)
	}

	return nil
}
