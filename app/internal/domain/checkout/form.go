package checkout

import (
	"sort"
	"strings"

	domorder "example.com/shareeghor/app/internal/domain/order"
)

// ValidationError carries one message per invalid form field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return domorder.ErrCheckoutValidation.Error() + ": " + strings.Join(keys, ", ")
}

func (e *ValidationError) Unwrap() error {
	return domorder.ErrCheckoutValidation
}

func validationResult(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// ValidateShipping checks the first wizard step.
func ValidateShipping(info domorder.ShippingInfo) error {
	fields := make(map[string]string)

	if strings.TrimSpace(info.FullName) == "" {
		fields["fullName"] = "Full name is required"
	}

	switch {
	case strings.TrimSpace(info.Email) == "":
		fields["email"] = "Email is required"
	case !ValidateEmail(info.Email):
		fields["email"] = "Invalid email address"
	}

	switch {
	case strings.TrimSpace(info.Phone) == "":
		fields["phone"] = "Phone number is required"
	case !ValidatePhone(info.Phone):
		fields["phone"] = "Invalid phone number (e.g., 01712345678)"
	}

	if strings.TrimSpace(info.Address) == "" {
		fields["address"] = "Address is required"
	}
	if info.City == "" {
		fields["city"] = "City is required"
	}

	return validationResult(fields)
}

// ValidatePayment checks the second wizard step. Cash on delivery needs no
// details; the demo card flow only checks presence.
func ValidatePayment(method domorder.PaymentMethod, card domorder.CardDetails) error {
	if !method.IsValid() {
		return domorder.ErrInvalidPayment
	}
	if method == domorder.PaymentCOD {
		return nil
	}

	fields := make(map[string]string)
	if strings.TrimSpace(card.Number) == "" {
		fields["cardNumber"] = "Card number is required"
	}
	if strings.TrimSpace(card.Name) == "" {
		fields["cardName"] = "Cardholder name is required"
	}
	if strings.TrimSpace(card.Expiry) == "" {
		fields["expiryDate"] = "Expiry date is required"
	}
	if strings.TrimSpace(card.CVV) == "" {
		fields["cvv"] = "CVV is required"
	}
	return validationResult(fields)
}
