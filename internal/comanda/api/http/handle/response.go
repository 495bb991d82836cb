package handle

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"carnitas-elguero/internal/comanda/app/core"
)

// envelope is the response shape every endpoint answers with:
// {"message":"success","data":...} on success, {"error":...} on failure.
type envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func jsonSuccess(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(envelope{Message: "success", Data: data})
}

func jsonError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": err.Error(),
	})
}

// writeStoreError maps repository errors onto HTTP codes. Unexpected errors
// become a generic 500 so internals never leak to the client.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		jsonError(w, http.StatusNotFound, core.ErrNotFound)
	case errors.Is(err, core.ErrDuplicateNombre):
		jsonError(w, http.StatusBadRequest, core.ErrDuplicateNombre)
	default:
		jsonError(w, http.StatusInternalServerError, errors.New("unexpected error"))
	}
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
