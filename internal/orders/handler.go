package orders

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hieuhoang83/quanan-api/internal/domain"
)

// HeaderGuestID carries the caller's guest identity, injected by the edge
// after authentication. Token issuance itself lives outside this service.
const HeaderGuestID = "X-Guest-Id"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

type createOrderRequest struct {
	VoucherID     string             `json:"voucher_id"`
	CustomerName  string             `json:"customer_name"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone"`
	Address       string             `json:"address"`
	Note          string             `json:"note"`
	PaymentMethod string             `json:"payment_method"`
	Lines         []domain.OrderLine `json:"lines"`
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	guestID := r.Header.Get(HeaderGuestID)
	if guestID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing guest identity")
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.service.CreateOrder(r.Context(), guestID, CreateOrderInput{
		VoucherID:     req.VoucherID,
		CustomerName:  req.CustomerName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Note:          req.Note,
		PaymentMethod: req.PaymentMethod,
		Lines:         req.Lines,
	})
	if err != nil {
		h.writeServiceError(w, err, "failed to create order")
		return
	}

	h.logger.Info("order created", "order_id", order.ID, "guest_id", order.GuestID, "payment", order.Payment)
	h.writeJSON(w, http.StatusCreated, order)
}

type priceQuoteRequest struct {
	VoucherID string             `json:"voucher_id"`
	Lines     []domain.OrderLine `json:"lines"`
}

func (h *Handler) HandlePriceQuote(w http.ResponseWriter, r *http.Request) {
	var req priceQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quote, err := h.service.ComputeTotal(r.Context(), req.Lines, req.VoucherID)
	if err != nil {
		h.writeServiceError(w, err, "failed to compute total")
		return
	}

	h.writeJSON(w, http.StatusOK, quote)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "failed to get order")
		return
	}

	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" {
		if _, err := domain.ParseOrderStatus(status); err != nil {
			h.writeError(w, http.StatusBadRequest, "unknown status filter")
			return
		}
	}
	limit, offset := pageParams(r)

	orders, err := h.service.ListOrders(r.Context(), status, limit, offset)
	if err != nil {
		h.logger.Error("failed to list orders", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) HandleListByGuest(w http.ResponseWriter, r *http.Request) {
	guestID := r.Header.Get(HeaderGuestID)
	if guestID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing guest identity")
		return
	}
	limit, offset := pageParams(r)

	orders, err := h.service.ListOrdersByGuest(r.Context(), guestID, limit, offset)
	if err != nil {
		h.logger.Error("failed to list guest orders", "error", err, "guest_id", guestID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, orders)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), id, status)
	if err != nil {
		h.writeServiceError(w, err, "failed to update order status")
		return
	}

	h.logger.Info("order status updated", "order_id", order.ID, "status", order.Status)
	h.writeJSON(w, http.StatusOK, order)
}

// HandleCancel is the customer-facing shortcut for a canceled status change.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), id, domain.OrderStatusCanceled)
	if err != nil {
		h.writeServiceError(w, err, "failed to cancel order")
		return
	}

	h.logger.Info("order canceled", "order_id", order.ID)
	h.writeJSON(w, http.StatusOK, order)
}

type updateOrderRequest struct {
	CustomerName  *string            `json:"customer_name"`
	Email         *string            `json:"email"`
	Phone         *string            `json:"phone"`
	Address       *string            `json:"address"`
	Note          *string            `json:"note"`
	PaymentMethod *string            `json:"payment_method"`
	VoucherID     *string            `json:"voucher_id"`
	Lines         []domain.OrderLine `json:"lines"`
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.service.UpdateOrder(r.Context(), id, UpdateOrderInput{
		CustomerName:  req.CustomerName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Note:          req.Note,
		PaymentMethod: req.PaymentMethod,
		VoucherID:     req.VoucherID,
		Lines:         req.Lines,
	})
	if err != nil {
		h.writeServiceError(w, err, "failed to update order")
		return
	}

	h.logger.Info("order updated", "order_id", order.ID, "payment", order.Payment)
	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		h.writeServiceError(w, err, "failed to delete order")
		return
	}

	h.logger.Info("order deleted", "order_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps workflow sentinels onto HTTP statuses; anything
// unrecognized is logged and hidden behind a 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		h.writeError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, ErrInvalidTransition):
		h.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrLineItemNotFound),
		errors.Is(err, ErrVoucherInvalid),
		errors.Is(err, ErrVoucherRequired),
		errors.Is(err, ErrNoLineItems),
		errors.Is(err, ErrBadLineItem):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(logMsg, "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func pageParams(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = min(n, maxPageSize)
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
