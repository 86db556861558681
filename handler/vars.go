package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"reselit-marketplace-backend/marketplace"
)

func eventIDVar(r *http.Request) (marketplace.EventID, error) {
	raw := mux.Vars(r)["eventID"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid event id: %s", raw)
	}
	return marketplace.EventID(id), nil
}

func tokenIndexVar(r *http.Request) (uint64, error) {
	raw := mux.Vars(r)["tokenIndex"]
	idx, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid token index: %s", raw)
	}
	return idx, nil
}
