// Package handler holds the plain-HTTP endpoints of the gateway.
package handler

import (
	"encoding/json"
	"net/http"
)

// TryAgainMessage is what clients see when a turn fails internally. Details
// stay in the server log.
const TryAgainMessage = "Something went wrong. Please try again."

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
