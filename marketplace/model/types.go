package model

import (
	"database/sql/driver"
	"encoding/json"
	"math"

	"github.com/curio/marketplace/lib/errors"
)

const (
	// MaxCreators is the maximal number of creators a sale pot (or an NFT's
	// metadata) can carry. Persisted records are fixed-width so the creator
	// list is bounded explicitly.
	MaxCreators int = 6
	// MaxBasisPoints is the denominator of fee basis points (100%).
	MaxBasisPoints int64 = 10000
	// MaxSalePrice bounds listing prices so that basis point and share
	// products in SalePot.Claim stay within int64.
	MaxSalePrice int64 = math.MaxInt64 / MaxBasisPoints
)

// SaleState is the state of a sale manager.
type SaleState int8

const (
	// SaleStateUnlisted indicates no live listing (initial, or redeemed).
	SaleStateUnlisted SaleState = 0
	// SaleStateListed indicates the NFT is escrowed and listed for sale.
	SaleStateListed SaleState = 1
	// SaleStateSold indicates the listing completed with a purchase.
	SaleStateSold SaleState = 2
)

// Value implements driver.Valuer.
func (s SaleState) Value() (value driver.Value, err error) {
	return int64(s), nil
}

// Scan implements sql.Scanner.
func (s *SaleState) Scan(src interface{}) error {
	switch src := src.(type) {
	case int64:
		*s = SaleState(src)
	default:
		return errors.Newf(
			"Incompatible type for SaleState with value: %q", src)
	}

	return nil
}

// Creator is a royalty recipient embedded in a sale pot or an NFT's
// metadata. Share is an integer percentage of the royalty base.
type Creator struct {
	Address  string `json:"address"`
	Verified bool   `json:"verified"`
	Share    int8   `json:"share"`
}

// CreatorList is a bounded list of creators stored as a JSON column.
type CreatorList []Creator

// Value implements driver.Valuer.
func (l CreatorList) Value() (value driver.Value, err error) {
	if len(l) > MaxCreators {
		return nil, errors.Newf(
			"Creator list too long: %d (max %d)", len(l), MaxCreators)
	}
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (l *CreatorList) Scan(src interface{}) error {
	var raw []byte
	switch src := src.(type) {
	case []byte:
		raw = src
	case string:
		raw = []byte(src)
	default:
		return errors.Newf(
			"Incompatible type for CreatorList with value: %q", src)
	}
	if err := json.Unmarshal(raw, l); err != nil {
		return errors.Trace(err)
	}
	if len(*l) > MaxCreators {
		return errors.Newf(
			"Creator list too long: %d (max %d)", len(*l), MaxCreators)
	}

	return nil
}

// ShareSum returns the sum of the list's shares.
func (l CreatorList) ShareSum() int64 {
	sum := int64(0)
	for _, c := range l {
		sum += int64(c.Share)
	}
	return sum
}
