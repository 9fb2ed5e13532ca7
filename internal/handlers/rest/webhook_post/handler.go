package webhook_post

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"payments/internal/service/order"
	"payments/internal/service/webhook"
	"payments/pkg/logger"
)

// заголовок с подписью, который шлет платежный шлюз
const signatureHeader = "verif-hash"

const maxPayloadBytes = 1 << 20

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

type webhookResponse struct {
	Status string `json:"status"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	result, err := h.service.Process(r.Context(), payload, r.Header.Get(signatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, webhook.ErrInvalidSignature):
			w.WriteHeader(http.StatusUnauthorized)
		case errors.Is(err, webhook.ErrMalformedPayload),
			errors.Is(err, order.ErrAmountMismatch):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, order.ErrOrderNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			h.log.With(
				logger.NewField("error", err),
			).Error("webhook processing failed")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := webhookResponse{
		Status: string(result),
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
