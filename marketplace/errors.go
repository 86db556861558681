package marketplace

import "errors"

// Failure modes of the marketplace state machine. Every mutating operation
// returns one of these (possibly wrapped) and leaves all state untouched on
// failure.
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrInvalidEvent        = errors.New("invalid event configuration")
	ErrSoldOut             = errors.New("sold out")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrInvalidPrice        = errors.New("invalid price")
	ErrPriceOverflow       = errors.New("price overflow")
	ErrNotTicketOwner      = errors.New("not ticket owner")
	ErrNotSeller           = errors.New("not seller")
	ErrAlreadyListed       = errors.New("already listed")
	ErrListingNotFound     = errors.New("listing not found")
	ErrTokenNotFound       = errors.New("token not found")
	ErrDuplicateToken      = errors.New("duplicate token")
	ErrNotHolder           = errors.New("not holder")
	ErrFundsTransfer       = errors.New("funds transfer failed")
)
