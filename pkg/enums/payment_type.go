package enums

import "fmt"

// PaymentType classifies what a payment covers.
type PaymentType string

const (
	PaymentTypeMembership       PaymentType = "membership"
	PaymentTypePersonalTraining PaymentType = "personal_training"
	PaymentTypeDayPass          PaymentType = "day_pass"
	PaymentTypeOther            PaymentType = "other"
)

var validPaymentTypes = []PaymentType{
	PaymentTypeMembership,
	PaymentTypePersonalTraining,
	PaymentTypeDayPass,
	PaymentTypeOther,
}

// String implements fmt.Stringer.
func (p PaymentType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentType.
func (p PaymentType) IsValid() bool {
	for _, candidate := range validPaymentTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentType converts raw input into a PaymentType.
func ParsePaymentType(value string) (PaymentType, error) {
	for _, candidate := range validPaymentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment type %q", value)
}
