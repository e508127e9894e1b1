package httpapi

import (
	"encoding/json"
	"net/http"

	"inferd/pkg/types"
)

// statusClientClosedRequest mirrors nginx's non-standard 499 for requests
// whose caller went away before a response could be written. Keeps access
// logs and metrics from recording an implicit 200.
const statusClientClosedRequest = 499

// Stable error codes exposed to clients. These are part of the API contract;
// do not rename.
const (
	codeInvalidRequest  = "invalid_request"
	codeOverloaded      = "overloaded"
	codeUnavailable     = "unavailable"
	codeTimeout         = "timeout"
	codeInferenceFailed = "inference_failed"
	codeInternal        = "internal"
)

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: code})
}
