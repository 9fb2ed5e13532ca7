package paygate

import "payments/internal/entities"

// Wire-форматы запросов и ответов шлюза.

type customerPayload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phonenumber"`
}

type hostedCheckout struct {
	TxRef       string          `json:"tx_ref"`
	Amount      int64           `json:"amount"`
	Currency    string          `json:"currency"`
	RedirectURL string          `json:"redirect_url"`
	Customer    customerPayload `json:"customer"`
}

type mobileMoneyCharge struct {
	TxRef       string `json:"tx_ref"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Network     string `json:"network"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	FullName    string `json:"fullname"`
}

func hostedCheckoutPayload(req entities.ChargeRequest) any {
	return hostedCheckout{
		TxRef:       req.OrderNumber,
		Amount:      req.Amount,
		Currency:    req.Currency,
		RedirectURL: req.RedirectURL,
		Customer: customerPayload{
			Name:        req.Customer.Name,
			Email:       req.Customer.Email,
			PhoneNumber: req.Customer.Phone,
		},
	}
}

func ghanaMobileMoneyPayload(req entities.ChargeRequest) any {
	return mobileMoneyCharge{
		TxRef:       req.OrderNumber,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Network:     req.Details.Network.String(),
		Email:       req.Customer.Email,
		PhoneNumber: req.Details.PhoneNumber,
		FullName:    req.Customer.Name,
	}
}

func mpesaPayload(req entities.ChargeRequest) any {
	// m-pesa не принимает network в теле, сеть определяется endpoint-ом
	return mobileMoneyCharge{
		TxRef:       req.OrderNumber,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Email:       req.Customer.Email,
		PhoneNumber: req.Details.PhoneNumber,
		FullName:    req.Customer.Name,
	}
}

type gatewayResponse struct {
	Status string `json:"status"`
	Data   struct {
		ID   string `json:"id"`
		Ref  string `json:"flw_ref"`
		Link string `json:"link"`
	} `json:"data"`
}

type verifyResponse struct {
	Status string `json:"status"`
	Data   struct {
		ID       string `json:"id"`
		TxRef    string `json:"tx_ref"`
		Status   string `json:"status"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	} `json:"data"`
}

type refundResponse struct {
	Status string `json:"status"`
	Data   struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Amount int64  `json:"amount"`
	} `json:"data"`
}
