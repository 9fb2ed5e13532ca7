package order

import "payments/internal/entities"

func ToDomain(o *OrderDB) *entities.Order {
	if o == nil {
		return nil
	}
	return &entities.Order{
		ID:               o.ID,
		Number:           o.Number,
		Status:           entities.OrderStatusType(o.Status),
		PaymentStatus:    entities.PaymentStatusType(o.PaymentStatus),
		TotalAmount:      o.TotalAmount,
		Currency:         o.Currency,
		CustomerName:     o.CustomerName,
		CustomerEmail:    o.CustomerEmail,
		CustomerPhone:    o.CustomerPhone,
		ShippingAddress:  o.ShippingAddress,
		DiscreetShipping: o.DiscreetShipping,
		TrackingNumber:   o.TrackingNumber,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func ToDomainList(orders []OrderDB) []entities.Order {
	result := make([]entities.Order, 0, len(orders))
	for i := range orders {
		result = append(result, *ToDomain(&orders[i]))
	}
	return result
}

func ToItemDomain(i *OrderItemDB) entities.OrderItem {
	return entities.OrderItem{
		ID:        i.ID,
		OrderID:   i.OrderID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
	}
}

func ToEventDomain(e *OrderEventDB) entities.OrderEvent {
	return entities.OrderEvent{
		ID:        e.ID,
		OrderID:   e.OrderID,
		Status:    entities.OrderStatusType(e.Status),
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
	}
}
