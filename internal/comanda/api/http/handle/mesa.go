package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"carnitas-elguero/internal/comanda/app/core"
	"carnitas-elguero/internal/comanda/app/services"
	"carnitas-elguero/internal/comanda/domain/dto"
	"carnitas-elguero/internal/xpkg/logger"
)

type MesaHandler struct {
	mesaService *services.MesaService
	mylog       logger.Logger
}

func NewMesaHandler(mesaService *services.MesaService, mylog logger.Logger) *MesaHandler {
	return &MesaHandler{
		mesaService: mesaService,
		mylog:       mylog,
	}
}

func (mh *MesaHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		mesas, err := mh.mesaService.List(ctx)
		if err != nil {
			mh.mylog.Action("list_mesas_failed").Error("Failed to list mesas", err)
			writeStoreError(w, err)
			return
		}
		jsonSuccess(w, http.StatusOK, mesas)
	}
}

func (mh *MesaHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		var req dto.MesaUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			mh.mylog.Action("parse_failed").Error("Failed to parse mesa update", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		if err := mh.mesaService.ValidateUpdate(req); err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		mesa, err := mh.mesaService.UpdateEstado(ctx, id, req)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		jsonSuccess(w, http.StatusOK, mesa)
	}
}
