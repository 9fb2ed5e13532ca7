package refund_post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"payments/internal/gateway/http/paygate"
	"payments/internal/service/order"
	"payments/internal/service/refund"
	"payments/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

type refundRequest struct {
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

type refundResponse struct {
	OrderNumber   string `json:"order_number"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var refundDTO refundRequest
	err = json.NewDecoder(r.Body).Decode(&refundDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	refunded, err := h.service.Refund(r.Context(), id, refundDTO.Amount, refundDTO.Reason)
	if err != nil {
		switch {
		case errors.Is(err, refund.ErrInvalidAmount):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, order.ErrOrderNotFound),
			errors.Is(err, order.ErrPaymentNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, refund.ErrOrderNotRefundable),
			errors.Is(err, refund.ErrPaymentNotRefundable),
			errors.Is(err, refund.ErrNoGatewayReference):
			w.WriteHeader(http.StatusConflict)
		case errors.Is(err, paygate.ErrRefund):
			w.WriteHeader(http.StatusBadGateway)
		default:
			h.log.With(
				logger.NewField("error", err),
			).Error("refund failed")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := refundResponse{
		OrderNumber:   refunded.Number,
		Status:        refunded.Status.String(),
		PaymentStatus: refunded.PaymentStatus.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
