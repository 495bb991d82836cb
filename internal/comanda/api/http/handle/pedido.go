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

type PedidoHandler struct {
	pedidoService *services.PedidoService
	mylog         logger.Logger
}

func NewPedidoHandler(pedidoService *services.PedidoService, mylog logger.Logger) *PedidoHandler {
	return &PedidoHandler{
		pedidoService: pedidoService,
		mylog:         mylog,
	}
}

func (ph *PedidoHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		pedidos, err := ph.pedidoService.List(ctx)
		if err != nil {
			ph.mylog.Action("list_pedidos_failed").Error("Failed to list pedidos", err)
			writeStoreError(w, err)
			return
		}
		jsonSuccess(w, http.StatusOK, pedidos)
	}
}

func (ph *PedidoHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.PedidoCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			ph.mylog.Action("parse_failed").Error("Failed to parse pedido", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		if err := ph.pedidoService.ValidateCreate(req); err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}
		ph.mylog.Action("received").Debug("Received pedido", "tipo", req.Tipo, "number_of_items", len(req.Items))

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		pedido, err := ph.pedidoService.Create(ctx, req)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		jsonSuccess(w, http.StatusCreated, pedido)
	}
}

func (ph *PedidoHandler) UpdateEstado() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		var req dto.PedidoEstadoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			ph.mylog.Action("parse_failed").Error("Failed to parse estado update", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		if err := ph.pedidoService.ValidateEstado(req.Estado); err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		if err := ph.pedidoService.UpdateEstado(ctx, id, req.Estado); err != nil {
			writeStoreError(w, err)
			return
		}
		jsonSuccess(w, http.StatusOK, map[string]any{"id": id, "estado": req.Estado})
	}
}
