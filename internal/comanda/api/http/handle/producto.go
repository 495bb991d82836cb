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

type ProductoHandler struct {
	productoService *services.ProductoService
	mylog           logger.Logger
}

func NewProductoHandler(productoService *services.ProductoService, mylog logger.Logger) *ProductoHandler {
	return &ProductoHandler{
		productoService: productoService,
		mylog:           mylog,
	}
}

func (ph *ProductoHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		productos, err := ph.productoService.List(ctx)
		if err != nil {
			ph.mylog.Action("list_productos_failed").Error("Failed to list productos", err)
			writeStoreError(w, err)
			return
		}
		jsonSuccess(w, http.StatusOK, productos)
	}
}

func (ph *ProductoHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.ProductoCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			ph.mylog.Action("parse_failed").Error("Failed to parse producto", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		if err := ph.productoService.ValidateCreate(req); err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		producto, err := ph.productoService.Create(ctx, req)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		jsonSuccess(w, http.StatusCreated, producto)
	}
}

func (ph *ProductoHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		var upd dto.ProductoUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			ph.mylog.Action("parse_failed").Error("Failed to parse producto update", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		if err := ph.productoService.ValidateUpdate(upd); err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		producto, err := ph.productoService.Update(ctx, id, upd)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		jsonSuccess(w, http.StatusOK, producto)
	}
}
