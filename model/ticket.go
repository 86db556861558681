package model

type BuyTicketRequest struct {
	Buyer   string `json:"buyer" validate:"required"`
	Payment uint64 `json:"payment"`
}

type TicketPurchase struct {
	EventID    int64  `json:"event_id"`
	TokenIndex uint64 `json:"token_index"`
	Buyer      string `json:"buyer"`
	PricePaid  uint64 `json:"price_paid"`
	Refund     uint64 `json:"refund"`
}

type OwnedTickets struct {
	EventID int64    `json:"event_id"`
	Holder  string   `json:"holder"`
	Tokens  []uint64 `json:"tokens"`
}

type Ownership struct {
	EventID    int64  `json:"event_id"`
	TokenIndex uint64 `json:"token_index"`
	Holder     string `json:"holder"`
	Owns       bool   `json:"owns"`
}
