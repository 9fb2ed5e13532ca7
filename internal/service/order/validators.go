package order

import (
	"strings"

	"payments/internal/entities"
)

func isValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}

func isValidPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if !strings.HasPrefix(phone, "+") || len(phone) < 8 {
		return false
	}

	for _, char := range phone[1:] {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}

func isValidCurrency(currency string) bool {
	if len(currency) != 3 {
		return false
	}
	for _, char := range currency {
		if char < 'A' || char > 'Z' {
			return false
		}
	}
	return true
}

func validateCheckout(req entities.CheckoutRequest) error {
	if len(req.Cart.Lines) == 0 {
		return ErrEmptyCart
	}
	for _, line := range req.Cart.Lines {
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if line.UnitPrice < 0 {
			return ErrInvalidPrice
		}
	}

	if !isValidCurrency(req.Currency) {
		return ErrInvalidCurrency
	}
	if !isValidName(req.Customer.Name) {
		return ErrInvalidName
	}
	if !isValidEmail(req.Customer.Email) {
		return ErrInvalidEmail
	}
	if !isValidPhone(req.Customer.Phone) {
		return ErrInvalidPhone
	}
	if strings.TrimSpace(req.Shipping.Address) == "" {
		return ErrInvalidAddress
	}

	switch req.Method {
	case entities.MethodCard:
	case entities.MethodMobileMoney:
		if req.Details.Network == "" {
			return ErrMissingNetwork
		}
	default:
		return ErrInvalidPaymentMethod
	}

	return nil
}
