package marketplace

import (
	"context"
	"fmt"
	"sort"

	"reselit-marketplace-backend/funds"
	"reselit-marketplace-backend/logger"
	"reselit-marketplace-backend/notify"
)

// Listing is an open resale offer for one minted token. At most one listing
// exists per (event, token index) at any time; a successful resale or a
// seller cancellation removes it outright.
type Listing struct {
	EventID    EventID
	TokenIndex uint64
	Price      uint64
	Seller     string
}

// Resale is the secondary-market engine. Listings live on the Event record
// under the same per-event lock as the primary counters, so a resale and a
// primary sale on the same event never interleave their partial effects.
type Resale struct {
	registry *Registry
	ledger   *Ledger
	bank     funds.Mover
	log      *notify.Log
	escrow   string
}

func NewResale(registry *Registry, ledger *Ledger, bank funds.Mover, log *notify.Log, escrowAccount string) *Resale {
	return &Resale{
		registry: registry,
		ledger:   ledger,
		bank:     bank,
		log:      log,
		escrow:   escrowAccount,
	}
}

// ListTicket records a resale offer by the current holder of the token.
func (r *Resale) ListTicket(ctx context.Context, eventID EventID, tokenIndex uint64, seller string, askPrice uint64) error {
	ev, err := r.registry.Event(eventID)
	if err != nil {
		return err
	}

	ev.mu.Lock()
	defer ev.mu.Unlock()

	holder, err := r.ledger.HolderOf(eventID, tokenIndex)
	if err != nil {
		return fmt.Errorf("listTicket: %w", err)
	}
	if holder != seller {
		return fmt.Errorf("listTicket: event %d token %d held by %s: %w", eventID, tokenIndex, holder, ErrNotTicketOwner)
	}
	if askPrice == 0 {
		return fmt.Errorf("listTicket: event %d token %d: %w", eventID, tokenIndex, ErrInvalidPrice)
	}
	if _, exists := ev.listings[tokenIndex]; exists {
		return fmt.Errorf("listTicket: event %d token %d: %w", eventID, tokenIndex, ErrAlreadyListed)
	}

	ev.listings[tokenIndex] = &Listing{
		EventID:    eventID,
		TokenIndex: tokenIndex,
		Price:      askPrice,
		Seller:     seller,
	}

	r.log.Append(notify.Notification{
		Kind:       notify.KindTicketListed,
		EventID:    int64(eventID),
		TokenIndex: tokenIndex,
		Actor:      seller,
		Amount:     askPrice,
	})
	logger.Infof(ctx, "listTicket: event %d token %d listed by %s at %d", eventID, tokenIndex, seller, askPrice)

	return nil
}

// BuyResale settles an open listing: the buyer's payment moves into escrow,
// the asking price is paid out to the seller of record, ownership transfers,
// the listing is deleted and the excess refunded. The steps commit together
// or not at all; any funds failure unwinds the moves already made.
func (r *Resale) BuyResale(ctx context.Context, eventID EventID, tokenIndex uint64, buyer string, payment uint64) error {
	ev, err := r.registry.Event(eventID)
	if err != nil {
		return err
	}

	ev.mu.Lock()
	defer ev.mu.Unlock()

	listing, exists := ev.listings[tokenIndex]
	if !exists {
		return fmt.Errorf("buyResale: event %d token %d: %w", eventID, tokenIndex, ErrListingNotFound)
	}
	if payment < listing.Price {
		return fmt.Errorf("buyResale: event %d token %d: paid %d, price %d: %w", eventID, tokenIndex, payment, listing.Price, ErrInsufficientPayment)
	}

	if err := r.bank.Transfer(buyer, r.escrow, payment); err != nil {
		return fmt.Errorf("buyResale: escrowing payment from %s: %v: %w", buyer, err, ErrFundsTransfer)
	}
	if excess := payment - listing.Price; excess > 0 {
		if err := r.bank.Refund(buyer, excess); err != nil {
			if rbErr := r.bank.Refund(buyer, payment); rbErr != nil {
				logger.Errorf(ctx, "buyResale: rollback refund of %d to %s failed: %+v", payment, buyer, rbErr)
			}
			return fmt.Errorf("buyResale: refunding excess %d to %s: %v: %w", excess, buyer, err, ErrFundsTransfer)
		}
	}
	if err := r.bank.Transfer(r.escrow, listing.Seller, listing.Price); err != nil {
		if rbErr := r.bank.Refund(buyer, listing.Price); rbErr != nil {
			logger.Errorf(ctx, "buyResale: rollback refund of %d to %s failed: %+v", listing.Price, buyer, rbErr)
		}
		return fmt.Errorf("buyResale: paying seller %s: %v: %w", listing.Seller, err, ErrFundsTransfer)
	}

	if err := r.ledger.Transfer(eventID, tokenIndex, listing.Seller, buyer); err != nil {
		if rbErr := r.bank.Transfer(listing.Seller, r.escrow, listing.Price); rbErr != nil {
			logger.Errorf(ctx, "buyResale: rollback of seller payout %d failed: %+v", listing.Price, rbErr)
		} else if rbErr := r.bank.Refund(buyer, listing.Price); rbErr != nil {
			logger.Errorf(ctx, "buyResale: rollback refund of %d to %s failed: %+v", listing.Price, buyer, rbErr)
		}
		return fmt.Errorf("buyResale: %w", err)
	}

	delete(ev.listings, tokenIndex)

	r.log.Append(notify.Notification{
		Kind:         notify.KindTicketResold,
		EventID:      int64(eventID),
		TokenIndex:   tokenIndex,
		Actor:        buyer,
		Counterparty: listing.Seller,
		Amount:       listing.Price,
	})
	logger.Infof(ctx, "buyResale: event %d token %d sold by %s to %s at %d", eventID, tokenIndex, listing.Seller, buyer, listing.Price)

	return nil
}

// CancelListing removes an open listing. Only the seller of record may cancel;
// ownership is unchanged.
func (r *Resale) CancelListing(ctx context.Context, eventID EventID, tokenIndex uint64, caller string) error {
	ev, err := r.registry.Event(eventID)
	if err != nil {
		return err
	}

	ev.mu.Lock()
	defer ev.mu.Unlock()

	listing, exists := ev.listings[tokenIndex]
	if !exists {
		return fmt.Errorf("cancelListing: event %d token %d: %w", eventID, tokenIndex, ErrListingNotFound)
	}
	if listing.Seller != caller {
		return fmt.Errorf("cancelListing: event %d token %d listed by %s: %w", eventID, tokenIndex, listing.Seller, ErrNotSeller)
	}

	delete(ev.listings, tokenIndex)

	r.log.Append(notify.Notification{
		Kind:       notify.KindListingCancelled,
		EventID:    int64(eventID),
		TokenIndex: tokenIndex,
		Actor:      caller,
		Amount:     listing.Price,
	})
	logger.Infof(ctx, "cancelListing: event %d token %d cancelled by %s", eventID, tokenIndex, caller)

	return nil
}

// Listings snapshots every open listing across all events: events in creation
// order, token indexes ascending within an event. The ordering is stable but
// carries no price or seller meaning.
func (r *Resale) Listings() []Listing {
	var all []Listing
	for _, id := range r.registry.Events() {
		ev, err := r.registry.Event(id)
		if err != nil {
			continue
		}

		ev.mu.RLock()
		indexes := make([]uint64, 0, len(ev.listings))
		for idx := range ev.listings {
			indexes = append(indexes, idx)
		}
		sort.Slice(indexes, func(a, b int) bool { return indexes[a] < indexes[b] })
		for _, idx := range indexes {
			all = append(all, *ev.listings[idx])
		}
		ev.mu.RUnlock()
	}
	return all
}
