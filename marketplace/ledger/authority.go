// Package ledger implements the asset registry and metadata service the
// marketplace relies on: token mints, token accounts and per-NFT metadata,
// backed by the same DB so every marketplace operation stays a single
// transaction.
package ledger

import (
	"github.com/curio/marketplace/marketplace/model"
)

// Authority is the capability required to move funds out of an account or to
// mutate a mint or metadata record. It is either a signer (an authenticated
// caller acting for its own address) or an escrow (a sale manager acting for
// its custody accounts). Escrow authorities can only be constructed from a
// loaded SaleManager record, never from caller input.
type Authority interface {
	Address() string
}

type signer struct {
	address string
}

func (a signer) Address() string {
	return a.address
}

// Signer returns the authority of an authenticated caller.
func Signer(
	address string,
) Authority {
	return signer{address}
}

type escrow struct {
	manager string
}

func (a escrow) Address() string {
	return a.manager
}

// Escrow returns the authority of a sale manager over its escrow accounts
// and over metadata whose update authority was moved to it.
func Escrow(
	manager *model.SaleManager,
) Authority {
	return escrow{manager.Token}
}
