package order_status_put

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"payments/internal/entities"
	"payments/internal/service/order"
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

type statusUpdateRequest struct {
	Status         string  `json:"status"`
	Note           string  `json:"note,omitempty"`
	TrackingNumber *string `json:"tracking_number,omitempty"`
}

type statusUpdateResponse struct {
	OrderNumber    string  `json:"order_number"`
	Status         string  `json:"status"`
	TrackingNumber *string `json:"tracking_number,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var statusDTO statusUpdateRequest
	err = json.NewDecoder(r.Body).Decode(&statusDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), id, entities.OrderStatusType(statusDTO.Status), statusDTO.Note, statusDTO.TrackingNumber)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidStatus),
			errors.Is(err, order.ErrInvalidTransition):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, order.ErrOrderNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, order.ErrStatusConflict):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := statusUpdateResponse{
		OrderNumber:    updated.Number,
		Status:         updated.Status.String(),
		TrackingNumber: updated.TrackingNumber,
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
