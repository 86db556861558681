package marketplace

import (
	"context"
	"fmt"

	"reselit-marketplace-backend/funds"
	"reselit-marketplace-backend/logger"
	"reselit-marketplace-backend/notify"
)

// Issuance is the primary-sale engine: it mints tickets against an event at
// the current curve price, holding the event lock for the whole purchase so a
// failed step never leaves a half-applied sale behind.
type Issuance struct {
	registry *Registry
	ledger   *Ledger
	bank     funds.Mover
	log      *notify.Log
	escrow   string
}

func NewIssuance(registry *Registry, ledger *Ledger, bank funds.Mover, log *notify.Log, escrowAccount string) *Issuance {
	return &Issuance{
		registry: registry,
		ledger:   ledger,
		bank:     bank,
		log:      log,
		escrow:   escrowAccount,
	}
}

// CurrentPrice returns the price the next primary buyer pays. With dynamic
// pricing off this is the base price; on, basePrice + ticketsSold*increment.
func (i *Issuance) CurrentPrice(eventID EventID) (uint64, error) {
	ev, err := i.registry.Event(eventID)
	if err != nil {
		return 0, err
	}

	ev.mu.RLock()
	defer ev.mu.RUnlock()
	return ev.priceLocked()
}

// BuyTicket executes one primary sale. The full payment moves into escrow,
// the excess over the curve price is refunded, and the token is minted to the
// buyer with index == ticketsSold at the time of purchase. Any failure
// unwinds the funds already moved and leaves the event untouched.
func (i *Issuance) BuyTicket(ctx context.Context, eventID EventID, buyer string, payment uint64) (tokenIndex, price uint64, err error) {
	ev, err := i.registry.Event(eventID)
	if err != nil {
		return 0, 0, err
	}

	ev.mu.Lock()
	defer ev.mu.Unlock()

	if ev.ticketsSold == ev.MaxTickets {
		return 0, 0, fmt.Errorf("buyTicket: event %d: %w", eventID, ErrSoldOut)
	}

	price, err = ev.priceLocked()
	if err != nil {
		return 0, 0, fmt.Errorf("buyTicket: %w", err)
	}
	if payment < price {
		return 0, 0, fmt.Errorf("buyTicket: event %d: paid %d, price %d: %w", eventID, payment, price, ErrInsufficientPayment)
	}

	tokenIndex = ev.ticketsSold

	if err := i.bank.Transfer(buyer, i.escrow, payment); err != nil {
		return 0, 0, fmt.Errorf("buyTicket: escrowing payment from %s: %v: %w", buyer, err, ErrFundsTransfer)
	}
	if excess := payment - price; excess > 0 {
		if err := i.bank.Refund(buyer, excess); err != nil {
			if rbErr := i.bank.Refund(buyer, payment); rbErr != nil {
				logger.Errorf(ctx, "buyTicket: rollback refund of %d to %s failed: %+v", payment, buyer, rbErr)
			}
			return 0, 0, fmt.Errorf("buyTicket: refunding excess %d to %s: %v: %w", excess, buyer, err, ErrFundsTransfer)
		}
	}

	if err := i.ledger.Mint(eventID, tokenIndex, buyer); err != nil {
		if rbErr := i.bank.Refund(buyer, price); rbErr != nil {
			logger.Errorf(ctx, "buyTicket: rollback refund of %d to %s failed: %+v", price, buyer, rbErr)
		}
		return 0, 0, fmt.Errorf("buyTicket: %w", err)
	}

	ev.ticketsSold++
	ev.proceeds += price

	i.log.Append(notify.Notification{
		Kind:       notify.KindTicketMinted,
		EventID:    int64(eventID),
		TokenIndex: tokenIndex,
		Actor:      buyer,
		Amount:     price,
	})
	logger.Infof(ctx, "buyTicket: event %d token %d minted to %s at %d", eventID, tokenIndex, buyer, price)

	return tokenIndex, price, nil
}

// TicketsOfOwner enumerates the tokens of an event currently held by holder,
// in ascending token index. It reads live ownership, so resold tickets move
// between holders' enumerations immediately.
func (i *Issuance) TicketsOfOwner(eventID EventID, holder string) ([]uint64, error) {
	ev, err := i.registry.Event(eventID)
	if err != nil {
		return nil, err
	}

	// the event read lock spans the whole scan so a concurrent resale cannot
	// tear the enumeration; writers take the event lock before the ledger's
	ev.mu.RLock()
	defer ev.mu.RUnlock()

	var tokens []uint64
	for idx := uint64(0); idx < ev.ticketsSold; idx++ {
		h, err := i.ledger.HolderOf(eventID, idx)
		if err != nil {
			return nil, fmt.Errorf("ticketsOfOwner: %w", err)
		}
		if h == holder {
			tokens = append(tokens, idx)
		}
	}
	return tokens, nil
}

// OwnsToken reports whether holder currently holds the given token. An index
// that was never minted is an error, not a false: the caller asked about a
// token that does not exist.
func (i *Issuance) OwnsToken(eventID EventID, holder string, tokenIndex uint64) (bool, error) {
	ev, err := i.registry.Event(eventID)
	if err != nil {
		return false, err
	}

	ev.mu.RLock()
	defer ev.mu.RUnlock()

	if tokenIndex >= ev.ticketsSold {
		return false, fmt.Errorf("ownsToken: event %d token %d: %w", eventID, tokenIndex, ErrTokenNotFound)
	}

	h, err := i.ledger.HolderOf(eventID, tokenIndex)
	if err != nil {
		return false, fmt.Errorf("ownsToken: %w", err)
	}
	return h == holder, nil
}
