package checkout_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"payments/internal/entities"
	"payments/internal/gateway/http/paygate"
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

type checkoutItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}

type checkoutRequest struct {
	Items    []checkoutItem `json:"items"`
	Total    int64          `json:"total"`
	Currency string         `json:"currency"`
	Customer struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"customer"`
	Shipping struct {
		Address  string `json:"address"`
		Discreet bool   `json:"discreet"`
	} `json:"shipping"`
	Payment struct {
		Method      string `json:"method"`
		Network     string `json:"network"`
		PhoneNumber string `json:"phone_number"`
	} `json:"payment"`
}

type checkoutResponse struct {
	OrderNumber      string `json:"order_number"`
	Status           string `json:"status"`
	CheckoutLink     string `json:"checkout_link,omitempty"`
	PaymentAmbiguous bool   `json:"payment_pending_verification"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var checkoutDTO checkoutRequest
	err := json.NewDecoder(r.Body).Decode(&checkoutDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	lines := make([]entities.CartLine, 0, len(checkoutDTO.Items))
	for _, item := range checkoutDTO.Items {
		lines = append(lines, entities.CartLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	result, err := h.service.CreateOrder(r.Context(), entities.CheckoutRequest{
		Cart:          entities.CartSnapshot{Lines: lines},
		DeclaredTotal: checkoutDTO.Total,
		Currency:      checkoutDTO.Currency,
		Customer: entities.Customer{
			Name:  checkoutDTO.Customer.Name,
			Email: checkoutDTO.Customer.Email,
			Phone: checkoutDTO.Customer.Phone,
		},
		Shipping: entities.ShippingInfo{
			Address:  checkoutDTO.Shipping.Address,
			Discreet: checkoutDTO.Shipping.Discreet,
		},
		Method: entities.PaymentMethodType(checkoutDTO.Payment.Method),
		Details: entities.MethodDetails{
			Network:     entities.MobileMoneyNetwork(checkoutDTO.Payment.Network),
			PhoneNumber: checkoutDTO.Payment.PhoneNumber,
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyCart),
			errors.Is(err, order.ErrInvalidQuantity),
			errors.Is(err, order.ErrInvalidPrice),
			errors.Is(err, order.ErrInvalidCurrency),
			errors.Is(err, order.ErrInvalidName),
			errors.Is(err, order.ErrInvalidEmail),
			errors.Is(err, order.ErrInvalidPhone),
			errors.Is(err, order.ErrInvalidAddress),
			errors.Is(err, order.ErrInvalidPaymentMethod),
			errors.Is(err, order.ErrMissingNetwork),
			errors.Is(err, order.ErrAmountMismatch):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, paygate.ErrPaymentInitiation):
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := checkoutResponse{
		OrderNumber:      result.Order.Number,
		Status:           result.Order.Status.String(),
		CheckoutLink:     result.CheckoutLink,
		PaymentAmbiguous: result.PaymentAmbiguous,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
