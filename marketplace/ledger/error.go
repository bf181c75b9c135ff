package ledger

import "fmt"

// ErrNotEnoughFunds is returned when a transfer would overdraw its source
// account.
type ErrNotEnoughFunds struct {
	Account string
	Amount  int64
}

func (e ErrNotEnoughFunds) Error() string {
	return fmt.Sprintf(
		"Not enough funds in account %s for amount %d", e.Account, e.Amount)
}

// ErrInvalidAuthority is returned when the provided authority does not match
// the record it attempts to act on.
type ErrInvalidAuthority struct {
	Authority string
}

func (e ErrInvalidAuthority) Error() string {
	return fmt.Sprintf(
		"Invalid authority: %s", e.Authority)
}
