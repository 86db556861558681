package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"reselit-marketplace-backend/logger"
	"reselit-marketplace-backend/marketplace"
	"reselit-marketplace-backend/model"
	"reselit-marketplace-backend/response"
)

// CreateEvent registers a new ticketed offering.
func CreateEvent(m *marketplace.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req model.CreateEventRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			logger.Errorf(ctx, "createEvent: error unmarshalling request body: %+v", err)
			response.BadRequest("invalid request body", "").Send(ctx, w)
			return
		}

		if err := validator.New().Struct(req); err != nil {
			logger.Errorf(ctx, "createEvent: invalid request: %+v", err)
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}

		id, err := m.Registry.CreateEvent(req.Name, req.Symbol, req.MaxTickets, req.BasePrice, req.DynamicPricing, req.PriceIncrement, req.Organizer)
		if err != nil {
			logger.Errorf(ctx, "createEvent: unable to create event: %+v", err)
			response.FromMarketplaceError(err).Send(ctx, w)
			return
		}

		response.SuccessResponse{
			Data:       &model.Event{EventID: int64(id), Name: req.Name, Symbol: req.Symbol, MaxTickets: req.MaxTickets, Remaining: req.MaxTickets, BasePrice: req.BasePrice, DynamicPricing: req.DynamicPricing, PriceIncrement: req.PriceIncrement, CurrentPrice: req.BasePrice, Organizer: req.Organizer},
			StatusCode: http.StatusCreated,
		}.Send(w)
	}
}

// GetEvents enumerates every offering in creation order, with its live sale
// state folded in.
func GetEvents(m *marketplace.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		events := make([]model.Event, 0)
		for _, id := range m.Registry.Events() {
			ev, err := m.Registry.Event(id)
			if err != nil {
				continue
			}

			price, err := m.Issuance.CurrentPrice(id)
			if err != nil {
				logger.Errorf(ctx, "getEvents: price for event %d: %+v", id, err)
				response.FromMarketplaceError(err).Send(ctx, w)
				return
			}

			sold := ev.TicketsSold()
			events = append(events, model.Event{
				EventID:        int64(ev.ID),
				Name:           ev.Name,
				Symbol:         ev.Symbol,
				MaxTickets:     ev.MaxTickets,
				TicketsSold:    sold,
				Remaining:      ev.MaxTickets - sold,
				BasePrice:      ev.BasePrice,
				DynamicPricing: ev.DynamicPricing,
				PriceIncrement: ev.PriceIncrement,
				CurrentPrice:   price,
				Organizer:      ev.Organizer,
				Proceeds:       ev.Proceeds(),
			})
		}

		response.SuccessResponse{
			Data:       events,
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

// GetCurrentPrice returns the price the next primary buyer pays.
func GetCurrentPrice(m *marketplace.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := eventIDVar(r)
		if err != nil {
			logger.Errorf(ctx, "getCurrentPrice: %+v", err)
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}

		price, err := m.Issuance.CurrentPrice(id)
		if err != nil {
			logger.Errorf(ctx, "getCurrentPrice: unable to get price: %+v", err)
			response.FromMarketplaceError(err).Send(ctx, w)
			return
		}

		response.SuccessResponse{
			Data:       &model.CurrentPrice{EventID: int64(id), Price: price},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}
