package model

type ListTicketRequest struct {
	Seller string `json:"seller" validate:"required"`
	Price  uint64 `json:"price" validate:"required,gt=0"`
}

type BuyResaleRequest struct {
	Buyer   string `json:"buyer" validate:"required"`
	Payment uint64 `json:"payment"`
}

type CancelListingRequest struct {
	Seller string `json:"seller" validate:"required"`
}

type Listing struct {
	EventID    int64  `json:"event_id"`
	TokenIndex uint64 `json:"token_index"`
	Price      uint64 `json:"price"`
	Seller     string `json:"seller"`
}
