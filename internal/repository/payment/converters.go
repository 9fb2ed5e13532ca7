package payment

import "payments/internal/entities"

func ToDomain(p *PaymentDB) *entities.Payment {
	if p == nil {
		return nil
	}
	return &entities.Payment{
		ID:           p.ID,
		OrderID:      p.OrderID,
		Method:       entities.PaymentMethodType(p.Method),
		Status:       entities.PaymentStatusType(p.Status),
		GatewayTxnID: p.GatewayTxnID,
		GatewayRef:   p.GatewayRef,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
