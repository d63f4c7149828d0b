package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "safecircle/pkg/domain-errors"
)

// writeError centralizes domain error translation to HTTP responses so every
// handler returns the same JSON error envelope. Validation errors carry their
// specific code so clients can correct the input.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := string(dErrors.CodeInternal)
	message := "internal error"
	var de *dErrors.Error
	if errors.As(err, &de) {
		status = dErrors.ToHTTPStatus(de.Code)
		code = string(de.Code)
		message = de.Message
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   code,
		"message": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
