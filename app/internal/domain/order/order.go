package order

import (
	"time"

	domcart "example.com/shareeghor/app/internal/domain/cart"
)

type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "cod"
	PaymentCard PaymentMethod = "card"
)

func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCOD, PaymentCard:
		return true
	default:
		return false
	}
}

type ShippingInfo struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// CardDetails are collected for the demo card flow only. They are
// validated and then dropped; an Order never carries them.
type CardDetails struct {
	Number string
	Name   string
	Expiry string
	CVV    string
}

// Order is the snapshot taken when an order is placed. It is written once
// and never mutated.
type Order struct {
	TrackingID        string         `json:"trackingId"`
	EstimatedDelivery string         `json:"estimatedDelivery"`
	Items             []domcart.Line `json:"items"`
	Subtotal          float64        `json:"subtotal"`
	DeliveryCharge    float64        `json:"deliveryCharge"`
	Total             float64        `json:"total"`
	ShippingInfo      ShippingInfo   `json:"shippingInfo"`
	PaymentMethod     PaymentMethod  `json:"paymentMethod"`
	OrderDate         time.Time      `json:"orderDate"`
}

func (o *Order) ItemCount() int64 {
	var n int64
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}
