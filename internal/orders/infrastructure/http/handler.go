package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hfsdouglas/microsservicos-escalaveis/internal/orders/application"
	"github.com/hfsdouglas/microsservicos-escalaveis/internal/orders/domain"
	"github.com/hfsdouglas/microsservicos-escalaveis/pkg/metrics"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("orders-http"),
	}
}

type createOrderReq struct {
	Amount   json.RawMessage `json:"amount"`
	ClientID string          `json:"clientId"`
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/orders", h.createOrder)
	r.Get("/health", h.health)
	r.Handle("/metrics", metrics.Handler())

	return r
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CreateOrder")
	defer span.End()

	var req createOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body!")
		return
	}

	parsed, err := application.ParseCreateOrder(req.Amount, req.ClientID)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.service.CreateOrder(ctx, parsed)
	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		writeMessage(w, http.StatusNotFound, "Client not found!")
		return
	case err != nil:
		h.log.Error("create order failed", "err", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error!")
		return
	}

	span.SetAttributes(attribute.String("order_id", order.ID))
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("OK"))
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
