package marketplace

import (
	"fmt"
	"math"
	"sync"
)

// EventID identifies one ticketed offering. IDs are assigned sequentially in
// creation order, starting at 1.
type EventID int64

// Event is one ticketed offering. The configuration fields are immutable after
// creation; ticketsSold, the holder records and the listings for the event are
// guarded by mu and mutated only by the issuance and resale engines.
type Event struct {
	ID             EventID
	Name           string
	Symbol         string
	MaxTickets     uint64
	BasePrice      uint64
	DynamicPricing bool
	PriceIncrement uint64
	Organizer      string

	mu          sync.RWMutex
	ticketsSold uint64
	listings    map[uint64]*Listing
	proceeds    uint64
}

// priceLocked computes the current primary price. Callers must hold ev.mu.
func (ev *Event) priceLocked() (uint64, error) {
	if !ev.DynamicPricing {
		return ev.BasePrice, nil
	}
	if ev.PriceIncrement != 0 && ev.ticketsSold > (math.MaxUint64-ev.BasePrice)/ev.PriceIncrement {
		return 0, fmt.Errorf("price for %d sold tickets: %w", ev.ticketsSold, ErrPriceOverflow)
	}
	return ev.BasePrice + ev.ticketsSold*ev.PriceIncrement, nil
}

// TicketsSold returns the number of primary sales committed so far.
func (ev *Event) TicketsSold() uint64 {
	ev.mu.RLock()
	defer ev.mu.RUnlock()
	return ev.ticketsSold
}

// Proceeds returns the primary-sale amount retained in escrow for the event.
func (ev *Event) Proceeds() uint64 {
	ev.mu.RLock()
	defer ev.mu.RUnlock()
	return ev.proceeds
}

// Registry owns the Event records. Events enumerate in creation order.
type Registry struct {
	mu     sync.RWMutex
	events []*Event
	byID   map[EventID]*Event
}

func NewRegistry() *Registry {
	return &Registry{byID: map[EventID]*Event{}}
}

// CreateEvent registers a new offering and returns its identifier. The full
// price curve must fit the numeric type: a configuration whose final price
// would wrap is rejected outright rather than failing on the last sale.
func (r *Registry) CreateEvent(name, symbol string, maxTickets, basePrice uint64, dynamicPricing bool, priceIncrement uint64, organizer string) (EventID, error) {
	if maxTickets == 0 {
		return 0, fmt.Errorf("createEvent: max tickets must be positive: %w", ErrInvalidEvent)
	}
	if dynamicPricing && priceIncrement != 0 && maxTickets-1 > (math.MaxUint64-basePrice)/priceIncrement {
		return 0, fmt.Errorf("createEvent: price curve exceeds numeric range: %w", ErrPriceOverflow)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ev := &Event{
		ID:             EventID(len(r.events) + 1),
		Name:           name,
		Symbol:         symbol,
		MaxTickets:     maxTickets,
		BasePrice:      basePrice,
		DynamicPricing: dynamicPricing,
		PriceIncrement: priceIncrement,
		Organizer:      organizer,
		listings:       map[uint64]*Listing{},
	}
	r.events = append(r.events, ev)
	r.byID[ev.ID] = ev

	return ev.ID, nil
}

// Events enumerates all event identifiers, earliest created first.
func (r *Registry) Events() []EventID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]EventID, 0, len(r.events))
	for _, ev := range r.events {
		ids = append(ids, ev.ID)
	}
	return ids
}

// Event looks up one offering by identifier.
func (r *Registry) Event(id EventID) (*Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ev, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("event %d: %w", id, ErrEventNotFound)
	}
	return ev, nil
}
