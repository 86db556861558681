package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reselit-marketplace-backend/factory"
	"reselit-marketplace-backend/router"
)

var (
	setupOnce sync.Once
	testMux   *mux.Router
	testBank  interface {
		Deposit(account string, amount uint64)
		Balance(account string) uint64
	}
)

// the factory holds process-wide singletons, so every test shares one market
// and works against its own event
func setup(t *testing.T) {
	t.Helper()
	setupOnce.Do(func() {
		f := factory.NewFactory()
		testMux = router.Router(context.Background(), f)
		testBank = f.Bank(context.Background())
	})
}

func do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if s, ok := body.(string); ok {
		reader = bytes.NewBufferString(s)
	} else {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	testMux.ServeHTTP(rr, req)
	return rr
}

func dataOf(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	return envelope.Data
}

func createEvent(t *testing.T, maxTickets, basePrice uint64, dynamic bool, increment uint64) int64 {
	t.Helper()

	rr := do(t, http.MethodPost, "/v1/event", map[string]interface{}{
		"name":            "Test Event",
		"symbol":          "TEST",
		"max_tickets":     maxTickets,
		"base_price":      basePrice,
		"dynamic_pricing": dynamic,
		"price_increment": increment,
		"organizer":       "organizer",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	return int64(dataOf(t, rr)["event_id"].(float64))
}

func TestCreateEventValidation(t *testing.T) {
	setup(t)

	rr := do(t, http.MethodPost, "/v1/event", "not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, http.MethodPost, "/v1/event", map[string]interface{}{
		"symbol":      "TEST",
		"max_tickets": 3,
		"organizer":   "organizer",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_DATA")

	rr = do(t, http.MethodPost, "/v1/event", map[string]interface{}{
		"name":        "No Supply",
		"symbol":      "ZERO",
		"max_tickets": 0,
		"organizer":   "organizer",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetCurrentPriceUnknownEvent(t *testing.T) {
	setup(t)

	rr := do(t, http.MethodGet, "/v1/event/99999/price", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "EVENT_NOT_FOUND")
}

func TestPrimarySaleFlow(t *testing.T) {
	setup(t)

	id := createEvent(t, 3, 100, true, 50)
	testBank.Deposit("alice", 1000)
	testBank.Deposit("bob", 1000)

	rr := do(t, http.MethodGet, fmt.Sprintf("/v1/event/%d/price", id), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(100), dataOf(t, rr)["price"])

	// overpay and get the difference back
	rr = do(t, http.MethodPost, fmt.Sprintf("/v1/event/%d/ticket", id), map[string]interface{}{
		"buyer":   "alice",
		"payment": 150,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	purchase := dataOf(t, rr)
	assert.Equal(t, float64(0), purchase["token_index"])
	assert.Equal(t, float64(100), purchase["price_paid"])
	assert.Equal(t, float64(50), purchase["refund"])
	assert.Equal(t, uint64(900), testBank.Balance("alice"))

	rr = do(t, http.MethodGet, fmt.Sprintf("/v1/event/%d/price", id), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(150), dataOf(t, rr)["price"])

	rr = do(t, http.MethodPost, fmt.Sprintf("/v1/event/%d/ticket", id), map[string]interface{}{
		"buyer":   "bob",
		"payment": 100,
	})
	assert.Equal(t, http.StatusPaymentRequired, rr.Code)
	assert.Contains(t, rr.Body.String(), "INSUFFICIENT_PAYMENT")

	rr = do(t, http.MethodGet, fmt.Sprintf("/v1/event/%d/ticket/0/owns/alice", id), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, dataOf(t, rr)["owns"])

	rr = do(t, http.MethodGet, fmt.Sprintf("/v1/event/%d/ticket/5/owns/alice", id), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "TOKEN_NOT_FOUND")

	rr = do(t, http.MethodGet, fmt.Sprintf("/v1/event/%d/holder/alice/tickets", id), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []interface{}{float64(0)}, dataOf(t, rr)["tokens"].([]interface{}))
}

func TestSoldOutOverHTTP(t *testing.T) {
	setup(t)

	id := createEvent(t, 1, 10, false, 0)
	testBank.Deposit("carol", 100)
	testBank.Deposit("dave", 100)

	rr := do(t, http.MethodPost, fmt.Sprintf("/v1/event/%d/ticket", id), map[string]interface{}{
		"buyer":   "carol",
		"payment": 10,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(t, http.MethodPost, fmt.Sprintf("/v1/event/%d/ticket", id), map[string]interface{}{
		"buyer":   "dave",
		"payment": 10,
	})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "SOLD_OUT")
}

func TestResaleFlowOverHTTP(t *testing.T) {
	setup(t)

	id := createEvent(t, 3, 100, true, 50)
	testBank.Deposit("erin", 1000)
	testBank.Deposit("frank", 1000)

	rr := do(t, http.MethodPost, fmt.Sprintf("/v1/event/%d/ticket", id), map[string]interface{}{
		"buyer":   "erin",
		"payment": 100,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	// non-holder cannot list
	rr = do(t, http.MethodPost, fmt.Sprintf("/v1/event/%d/ticket/0/listing", id), map[string]interface{}{
		"seller": "frank",
		"price":  200,
	})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_TICKET_OWNER")

	rr = do(t, http.MethodPost, fmt.Sprintf("/v1/event/%d/ticket/0/listing", id), map[string]interface{}{
		"seller": "erin",
		"price":  200,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(t, http.MethodGet, "/v1/listing", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"seller":"erin"`)

	erinBefore := testBank.Balance("erin")
	frankBefore := testBank.Balance("frank")

	rr = do(t, http.MethodPost, fmt.Sprintf("/v1/event/%d/ticket/0/listing/buy", id), map[string]interface{}{
		"buyer":   "frank",
		"payment": 300,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "frank", dataOf(t, rr)["holder"])

	assert.Equal(t, erinBefore+200, testBank.Balance("erin"))
	assert.Equal(t, frankBefore-200, testBank.Balance("frank"), "excess of 100 refunded")

	// listing gone
	rr = do(t, http.MethodPost, fmt.Sprintf("/v1/event/%d/ticket/0/listing/buy", id), map[string]interface{}{
		"buyer":   "erin",
		"payment": 300,
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "LISTING_NOT_FOUND")

	// new holder lists, then cancels; only the seller may cancel
	rr = do(t, http.MethodPost, fmt.Sprintf("/v1/event/%d/ticket/0/listing", id), map[string]interface{}{
		"seller": "frank",
		"price":  400,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(t, http.MethodDelete, fmt.Sprintf("/v1/event/%d/ticket/0/listing", id), map[string]interface{}{
		"seller": "erin",
	})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_SELLER")

	rr = do(t, http.MethodDelete, fmt.Sprintf("/v1/event/%d/ticket/0/listing", id), map[string]interface{}{
		"seller": "frank",
	})
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestGetEventsIncludesLiveState(t *testing.T) {
	setup(t)

	id := createEvent(t, 2, 30, true, 10)
	testBank.Deposit("grace", 100)

	rr := do(t, http.MethodPost, fmt.Sprintf("/v1/event/%d/ticket", id), map[string]interface{}{
		"buyer":   "grace",
		"payment": 30,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(t, http.MethodGet, "/v1/event", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var envelope struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))

	var found map[string]interface{}
	for _, ev := range envelope.Data {
		if int64(ev["event_id"].(float64)) == id {
			found = ev
		}
	}
	require.NotNil(t, found, "created event enumerated")
	assert.Equal(t, float64(1), found["tickets_sold"])
	assert.Equal(t, float64(1), found["remaining"])
	assert.Equal(t, float64(40), found["current_price"])
	assert.Equal(t, float64(30), found["proceeds"])
}
