package model

type CreateEventRequest struct {
	Name           string `json:"name" validate:"required"`
	Symbol         string `json:"symbol" validate:"required"`
	MaxTickets     uint64 `json:"max_tickets" validate:"required,gt=0"`
	BasePrice      uint64 `json:"base_price"`
	DynamicPricing bool   `json:"dynamic_pricing"`
	PriceIncrement uint64 `json:"price_increment"`
	Organizer      string `json:"organizer" validate:"required"`
}

type Event struct {
	EventID        int64  `json:"event_id"`
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	MaxTickets     uint64 `json:"max_tickets"`
	TicketsSold    uint64 `json:"tickets_sold"`
	Remaining      uint64 `json:"remaining"`
	BasePrice      uint64 `json:"base_price"`
	DynamicPricing bool   `json:"dynamic_pricing"`
	PriceIncrement uint64 `json:"price_increment"`
	CurrentPrice   uint64 `json:"current_price"`
	Organizer      string `json:"organizer"`
	Proceeds       uint64 `json:"proceeds"`
}

type CurrentPrice struct {
	EventID int64  `json:"event_id"`
	Price   uint64 `json:"price"`
}
