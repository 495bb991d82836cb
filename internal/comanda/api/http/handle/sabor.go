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

type SaborHandler struct {
	saborService *services.SaborService
	mylog        logger.Logger
}

func NewSaborHandler(saborService *services.SaborService, mylog logger.Logger) *SaborHandler {
	return &SaborHandler{
		saborService: saborService,
		mylog:        mylog,
	}
}

func (sh *SaborHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		sabores, err := sh.saborService.List(ctx, r.URL.Query().Get("categoria"))
		if err != nil {
			sh.mylog.Action("list_sabores_failed").Error("Failed to list sabores", err)
			writeStoreError(w, err)
			return
		}
		jsonSuccess(w, http.StatusOK, sabores)
	}
}

func (sh *SaborHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.SaborCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			sh.mylog.Action("parse_failed").Error("Failed to parse sabor", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		if err := sh.saborService.ValidateCreate(req); err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		sabor, err := sh.saborService.Create(ctx, req)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		jsonSuccess(w, http.StatusCreated, sabor)
	}
}

func (sh *SaborHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		var req dto.SaborUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			sh.mylog.Action("parse_failed").Error("Failed to parse sabor update", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}
		if req.Disponible == nil {
			jsonError(w, http.StatusBadRequest, errors.New("disponible is required"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		sabor, err := sh.saborService.UpdateDisponible(ctx, id, *req.Disponible)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		jsonSuccess(w, http.StatusOK, sabor)
	}
}
