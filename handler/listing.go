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

// ListTicket opens a resale offer for a held token.
func ListTicket(m *marketplace.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := eventIDVar(r)
		if err != nil {
			logger.Errorf(ctx, "listTicket: %+v", err)
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}
		tokenIndex, err := tokenIndexVar(r)
		if err != nil {
			logger.Errorf(ctx, "listTicket: %+v", err)
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}

		var req model.ListTicketRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Errorf(ctx, "listTicket: error unmarshalling request body: %+v", err)
			response.BadRequest("invalid request body", "").Send(ctx, w)
			return
		}

		if err := validator.New().Struct(req); err != nil {
			logger.Errorf(ctx, "listTicket: invalid request: %+v", err)
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}

		if err := m.Resale.ListTicket(ctx, id, tokenIndex, req.Seller, req.Price); err != nil {
			logger.Errorf(ctx, "listTicket: unable to list ticket: %+v", err)
			response.FromMarketplaceError(err).Send(ctx, w)
			return
		}

		response.SuccessResponse{
			Data:       &model.Listing{EventID: int64(id), TokenIndex: tokenIndex, Price: req.Price, Seller: req.Seller},
			StatusCode: http.StatusCreated,
		}.Send(w)
	}
}

// BuyResale settles an open listing for the buyer named in the body.
func BuyResale(m *marketplace.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := eventIDVar(r)
		if err != nil {
			logger.Errorf(ctx, "buyResale: %+v", err)
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}
		tokenIndex, err := tokenIndexVar(r)
		if err != nil {
			logger.Errorf(ctx, "buyResale: %+v", err)
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}

		var req model.BuyResaleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Errorf(ctx, "buyResale: error unmarshalling request body: %+v", err)
			response.BadRequest("invalid request body", "").Send(ctx, w)
			return
		}

		if err := validator.New().Struct(req); err != nil {
			logger.Errorf(ctx, "buyResale: invalid request: %+v", err)
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}

		if err := m.Resale.BuyResale(ctx, id, tokenIndex, req.Buyer, req.Payment); err != nil {
			logger.Errorf(ctx, "buyResale: unable to buy resale ticket: %+v", err)
			response.FromMarketplaceError(err).Send(ctx, w)
			return
		}

		holder, err := m.Ledger.HolderOf(id, tokenIndex)
		if err != nil {
			logger.Errorf(ctx, "buyResale: unable to read holder after sale: %+v", err)
			response.FromMarketplaceError(err).Send(ctx, w)
			return
		}

		response.SuccessResponse{
			Data:       &model.Ownership{EventID: int64(id), TokenIndex: tokenIndex, Holder: holder, Owns: true},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

// CancelListing withdraws an open listing; seller only.
func CancelListing(m *marketplace.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := eventIDVar(r)
		if err != nil {
			logger.Errorf(ctx, "cancelListing: %+v", err)
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}
		tokenIndex, err := tokenIndexVar(r)
		if err != nil {
			logger.Errorf(ctx, "cancelListing: %+v", err)
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}

		var req model.CancelListingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Errorf(ctx, "cancelListing: error unmarshalling request body: %+v", err)
			response.BadRequest("invalid request body", "").Send(ctx, w)
			return
		}

		if err := validator.New().Struct(req); err != nil {
			logger.Errorf(ctx, "cancelListing: invalid request: %+v", err)
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}

		if err := m.Resale.CancelListing(ctx, id, tokenIndex, req.Seller); err != nil {
			logger.Errorf(ctx, "cancelListing: unable to cancel listing: %+v", err)
			response.FromMarketplaceError(err).Send(ctx, w)
			return
		}

		response.SuccessResponse{
			Data:       &model.Listing{EventID: int64(id), TokenIndex: tokenIndex, Seller: req.Seller},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

// GetListings snapshots every open listing across all events.
func GetListings(m *marketplace.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listings := make([]model.Listing, 0)
		for _, l := range m.Resale.Listings() {
			listings = append(listings, model.Listing{
				EventID:    int64(l.EventID),
				TokenIndex: l.TokenIndex,
				Price:      l.Price,
				Seller:     l.Seller,
			})
		}

		response.SuccessResponse{
			Data:       listings,
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}
