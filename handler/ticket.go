package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"reselit-marketplace-backend/logger"
	"reselit-marketplace-backend/marketplace"
	"reselit-marketplace-backend/model"
	"reselit-marketplace-backend/response"
)

// BuyTicket executes a primary sale for the caller named in the body.
func BuyTicket(m *marketplace.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := eventIDVar(r)
		if err != nil {
			logger.Errorf(ctx, "buyTicket: %+v", err)
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}

		var req model.BuyTicketRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Errorf(ctx, "buyTicket: error unmarshalling request body: %+v", err)
			response.BadRequest("invalid request body", "").Send(ctx, w)
			return
		}

		if err := validator.New().Struct(req); err != nil {
			logger.Errorf(ctx, "buyTicket: invalid request: %+v", err)
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}

		tokenIndex, price, err := m.Issuance.BuyTicket(ctx, id, req.Buyer, req.Payment)
		if err != nil {
			logger.Errorf(ctx, "buyTicket: unable to buy ticket: %+v", err)
			response.FromMarketplaceError(err).Send(ctx, w)
			return
		}

		response.SuccessResponse{
			Data: &model.TicketPurchase{
				EventID:    int64(id),
				TokenIndex: tokenIndex,
				Buyer:      req.Buyer,
				PricePaid:  price,
				Refund:     req.Payment - price,
			},
			StatusCode: http.StatusCreated,
		}.Send(w)
	}
}

// TicketsOfOwner lists the tokens of an event currently held by an account.
func TicketsOfOwner(m *marketplace.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := eventIDVar(r)
		if err != nil {
			logger.Errorf(ctx, "ticketsOfOwner: %+v", err)
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}
		holder := mux.Vars(r)["account"]

		tokens, err := m.Issuance.TicketsOfOwner(id, holder)
		if err != nil {
			logger.Errorf(ctx, "ticketsOfOwner: unable to enumerate tickets: %+v", err)
			response.FromMarketplaceError(err).Send(ctx, w)
			return
		}
		if tokens == nil {
			tokens = []uint64{}
		}

		response.SuccessResponse{
			Data:       &model.OwnedTickets{EventID: int64(id), Holder: holder, Tokens: tokens},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

// OwnsToken reports whether an account holds a specific minted token.
func OwnsToken(m *marketplace.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := eventIDVar(r)
		if err != nil {
			logger.Errorf(ctx, "ownsToken: %+v", err)
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}
		tokenIndex, err := tokenIndexVar(r)
		if err != nil {
			logger.Errorf(ctx, "ownsToken: %+v", err)
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}
		holder := mux.Vars(r)["account"]

		owns, err := m.Issuance.OwnsToken(id, holder, tokenIndex)
		if err != nil {
			logger.Errorf(ctx, "ownsToken: unable to check ownership: %+v", err)
			response.FromMarketplaceError(err).Send(ctx, w)
			return
		}

		response.SuccessResponse{
			Data:       &model.Ownership{EventID: int64(id), TokenIndex: tokenIndex, Holder: holder, Owns: owns},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}
