package order_get

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

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

type orderItemResponse struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}

type orderEventResponse struct {
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type orderResponse struct {
	OrderNumber     string               `json:"order_number"`
	Status          string               `json:"status"`
	PaymentStatus   string               `json:"payment_status"`
	TotalAmount     int64                `json:"total_amount"`
	Currency        string               `json:"currency"`
	CustomerName    string               `json:"customer_name"`
	ShippingAddress string               `json:"shipping_address"`
	TrackingNumber  *string              `json:"tracking_number,omitempty"`
	Items           []orderItemResponse  `json:"items"`
	Events          []orderEventResponse `json:"events"`
	CreatedAt       time.Time            `json:"created_at"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	if number == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	orderEntity, events, err := h.service.GetOrderByNumber(r.Context(), number)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			h.log.With(
				logger.NewField("error", err),
			).Error("get order failed")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := toResponse(orderEntity, events)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func toResponse(orderEntity *entities.Order, events []entities.OrderEvent) orderResponse {
	items := make([]orderItemResponse, 0, len(orderEntity.Items))
	for _, item := range orderEntity.Items {
		items = append(items, orderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	timeline := make([]orderEventResponse, 0, len(events))
	for _, event := range events {
		timeline = append(timeline, orderEventResponse{
			Status:    event.Status.String(),
			Note:      event.Note,
			CreatedAt: event.CreatedAt,
		})
	}

	return orderResponse{
		OrderNumber:     orderEntity.Number,
		Status:          orderEntity.Status.String(),
		PaymentStatus:   orderEntity.PaymentStatus.String(),
		TotalAmount:     orderEntity.TotalAmount,
		Currency:        orderEntity.Currency,
		CustomerName:    orderEntity.CustomerName,
		ShippingAddress: orderEntity.ShippingAddress,
		TrackingNumber:  orderEntity.TrackingNumber,
		Items:           items,
		Events:          timeline,
		CreatedAt:       orderEntity.CreatedAt,
	}
}
