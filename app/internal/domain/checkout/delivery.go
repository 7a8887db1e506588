package checkout

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	FreeDeliveryThreshold = 3000
	InsideDhakaCharge     = 60
	OutsideDhakaCharge    = 120

	CityDhaka = "Dhaka"
)

// DeliveryCharge is free from FreeDeliveryThreshold upwards, otherwise it
// depends on whether the city is Dhaka.
func DeliveryCharge(city string, subtotal float64) float64 {
	if subtotal >= FreeDeliveryThreshold {
		return 0
	}
	if city == CityDhaka {
		return InsideDhakaCharge
	}
	return OutsideDhakaCharge
}

type Summary struct {
	Subtotal             float64 `json:"subtotal"`
	DeliveryCharge       float64 `json:"deliveryCharge"`
	Total                float64 `json:"total"`
	AmountToFreeDelivery float64 `json:"amountToFreeDelivery"`
}

// Summarize prices a subtotal for city. A NaN or infinite subtotal is
// priced as 0.
func Summarize(city string, subtotal float64) Summary {
	if math.IsNaN(subtotal) || math.IsInf(subtotal, 0) {
		subtotal = 0
	}
	charge := DeliveryCharge(city, subtotal)
	s := Summary{
		Subtotal:       subtotal,
		DeliveryCharge: charge,
		Total:          decimal.NewFromFloat(subtotal).Add(decimal.NewFromFloat(charge)).InexactFloat64(),
	}
	if subtotal < FreeDeliveryThreshold {
		s.AmountToFreeDelivery = decimal.NewFromInt(FreeDeliveryThreshold).Sub(decimal.NewFromFloat(subtotal)).InexactFloat64()
	}
	return s
}

var cities = []string{
	"Dhaka",
	"Chittagong",
	"Sylhet",
	"Rajshahi",
	"Khulna",
	"Barisal",
	"Rangpur",
	"Mymensingh",
	"Comilla",
	"Gazipur",
	"Narayanganj",
}

// Cities lists the cities offered at checkout. Other cities are accepted
// and charged the outside-Dhaka rate.
func Cities() []string {
	out := make([]string, len(cities))
	copy(out, cities)
	return out
}
