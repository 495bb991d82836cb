package handle

import (
	"context"
	"errors"
	"net/http"
	"time"

	"carnitas-elguero/internal/comanda/app/core"
)

type HealthHandler struct {
	db core.IDB
}

func NewHealthHandler(db core.IDB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check reports whether the storage connection is alive.
func (hh *HealthHandler) Check() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		if err := hh.db.IsAlive(ctx); err != nil {
			jsonError(w, http.StatusServiceUnavailable, errors.New("database connection failed"))
			return
		}
		jsonSuccess(w, http.StatusOK, nil)
	}
}
