package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"reselit-marketplace-backend/logger"
	"reselit-marketplace-backend/marketplace"
)

type ErrorResponse struct {
	StatusCode  int    `json:"-"`
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
}

func (r ErrorResponse) Error() string {
	return fmt.Sprintf("StatusCode: %d, Success: %t, Message: %s, Status: %s, Description: %s", r.StatusCode, r.Success, r.Message, r.Status, r.Description)
}

func (r ErrorResponse) Send(ctx context.Context, w http.ResponseWriter) {
	logger.Errorf(ctx, r.Error())
	w.WriteHeader(r.StatusCode)
	json.NewEncoder(w).Encode(r)
}

func BadRequest(message, description string) ErrorResponse {
	return ErrorResponse{
		StatusCode:  http.StatusBadRequest,
		Success:     false,
		Message:     message,
		Status:      "BAD_REQUEST",
		Description: description,
	}
}

func ResourceNotFound(message, description string) ErrorResponse {
	return ErrorResponse{
		StatusCode:  http.StatusNotFound,
		Success:     false,
		Message:     message,
		Status:      "NOT_FOUND",
		Description: description,
	}
}

func InvalidData(description string) ErrorResponse {
	return ErrorResponse{
		StatusCode:  http.StatusBadRequest,
		Success:     false,
		Message:     "Invalid data passed",
		Status:      "INVALID_DATA",
		Description: description,
	}
}

func SomethingWrong() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusInternalServerError,
		Success:    false,
		Message:    "Sorry, Something went wrong",
		Status:     "SOMETHING_WRONG",
	}
}

// marketplaceStatus maps each marketplace failure to its wire status and HTTP
// code. Order matters only in that every sentinel appears exactly once.
var marketplaceStatus = []struct {
	err    error
	status string
	code   int
}{
	{marketplace.ErrEventNotFound, "EVENT_NOT_FOUND", http.StatusNotFound},
	{marketplace.ErrInvalidEvent, "INVALID_EVENT", http.StatusBadRequest},
	{marketplace.ErrSoldOut, "SOLD_OUT", http.StatusConflict},
	{marketplace.ErrInsufficientPayment, "INSUFFICIENT_PAYMENT", http.StatusPaymentRequired},
	{marketplace.ErrInvalidPrice, "INVALID_PRICE", http.StatusBadRequest},
	{marketplace.ErrPriceOverflow, "PRICE_OVERFLOW", http.StatusUnprocessableEntity},
	{marketplace.ErrNotTicketOwner, "NOT_TICKET_OWNER", http.StatusForbidden},
	{marketplace.ErrNotSeller, "NOT_SELLER", http.StatusForbidden},
	{marketplace.ErrAlreadyListed, "ALREADY_LISTED", http.StatusConflict},
	{marketplace.ErrListingNotFound, "LISTING_NOT_FOUND", http.StatusNotFound},
	{marketplace.ErrTokenNotFound, "TOKEN_NOT_FOUND", http.StatusNotFound},
	{marketplace.ErrDuplicateToken, "DUPLICATE_TOKEN", http.StatusConflict},
	{marketplace.ErrNotHolder, "NOT_HOLDER", http.StatusForbidden},
	{marketplace.ErrFundsTransfer, "FUNDS_TRANSFER_FAILED", http.StatusBadGateway},
}

// FromMarketplaceError translates a core failure into the error envelope.
// Failures outside the taxonomy collapse to SOMETHING_WRONG.
func FromMarketplaceError(err error) ErrorResponse {
	for _, m := range marketplaceStatus {
		if errors.Is(err, m.err) {
			return ErrorResponse{
				StatusCode: m.code,
				Success:    false,
				Message:    m.err.Error(),
				Status:     m.status,
			}
		}
	}
	return SomethingWrong()
}
