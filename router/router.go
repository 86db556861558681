package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"reselit-marketplace-backend/factory"
	"reselit-marketplace-backend/handler"
	"reselit-marketplace-backend/healthcheck"
	"reselit-marketplace-backend/middleware"
	"reselit-marketplace-backend/response"
)

// Router returns the router for all the API handlers.
func Router(ctx context.Context, f factory.Factory) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.SetCorrelationIDHeader)
	r.Use(middleware.PanicHandler)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.ResourceNotFound(fmt.Sprintf("The requested resource was not found: path: %s, method: %s", req.URL.Path, req.Method), "The requested resource was not found!").Send(req.Context(), w)
	})

	r.Use(middleware.ResponseTimeLogging)
	r.Use(middleware.RequestLogging)
	r.Use(middleware.SetContentTypeHeader)

	m := f.Market(ctx)

	r.HandleFunc("/healthcheck", healthcheck.Self).Methods(http.MethodGet)
	baseRouter := r.PathPrefix("/v1").Subrouter()

	eventRouter := baseRouter.PathPrefix("/event").Subrouter()
	eventRouter.HandleFunc("", handler.CreateEvent(m)).Methods(http.MethodPost)
	eventRouter.HandleFunc("", handler.GetEvents(m)).Methods(http.MethodGet)
	eventRouter.HandleFunc("/{eventID}/price", handler.GetCurrentPrice(m)).Methods(http.MethodGet)
	eventRouter.HandleFunc("/{eventID}/ticket", handler.BuyTicket(m)).Methods(http.MethodPost)
	eventRouter.HandleFunc("/{eventID}/holder/{account}/tickets", handler.TicketsOfOwner(m)).Methods(http.MethodGet)
	eventRouter.HandleFunc("/{eventID}/ticket/{tokenIndex}/owns/{account}", handler.OwnsToken(m)).Methods(http.MethodGet)
	eventRouter.HandleFunc("/{eventID}/ticket/{tokenIndex}/listing", handler.ListTicket(m)).Methods(http.MethodPost)
	eventRouter.HandleFunc("/{eventID}/ticket/{tokenIndex}/listing/buy", handler.BuyResale(m)).Methods(http.MethodPost)
	eventRouter.HandleFunc("/{eventID}/ticket/{tokenIndex}/listing", handler.CancelListing(m)).Methods(http.MethodDelete)

	baseRouter.HandleFunc("/listing", handler.GetListings(m)).Methods(http.MethodGet)

	return r
}
