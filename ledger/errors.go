package ledger

import "errors"

var (
	ErrInvalidArgument = errors.New("quantity and price must be greater than zero")
	ErrExcessReturn    = errors.New("cannot return more items than were sold")
)
