package checkout

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go-butterflies-checkout/internal/validation"
)

// FieldPaymentMethod selects the payment step's rule set. It is a selection,
// not a validated text field.
const FieldPaymentMethod = "paymentMethod"

const PaymentMethodCreditCard = "credit-card"

var (
	phonePattern  = regexp.MustCompile(`^\+?[0-9 ()-]{7,20}$`)
	postalPattern = regexp.MustCompile(`^[0-9]{4,10}$`)
	cardPattern   = regexp.MustCompile(`^[0-9 ]{12,23}$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	cvcPattern    = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// ShippingRules is the address form rule set. The postal code carries the
// one async rule in the flow, a simulated deliverability lookup.
func ShippingRules(lookupDelay time.Duration) map[string]validation.Rule {
	return map[string]validation.Rule{
		"fullName": {
			Required:  true,
			MinLength: 2,
			MaxLength: 80,
		},
		"email": {
			Required: true,
			Email:    true,
		},
		"phone": {
			Required: true,
			Pattern:  phonePattern,
			Hint:     "digits, spaces and dashes only, e.g. +31 6 1234 5678",
		},
		"addressLine1": {
			Required:  true,
			MinLength: 5,
			MaxLength: 120,
		},
		"addressLine2": {
			MaxLength: 120,
		},
		"city": {
			Required:  true,
			MinLength: 2,
			MaxLength: 64,
		},
		"postalCode": {
			Required: true,
			Pattern:  postalPattern,
			Hint:     "postal codes are digits only",
			Async:    postalCheck(lookupDelay),
		},
		"country": {
			Required:  true,
			MinLength: 2,
			MaxLength: 64,
		},
	}
}

// PaymentRules is the credit-card form rule set. Other payment methods skip
// field validation entirely.
func PaymentRules(now func() time.Time) map[string]validation.Rule {
	return map[string]validation.Rule{
		"cardHolder": {
			Required:  true,
			MinLength: 2,
			MaxLength: 80,
		},
		"cardNumber": {
			Required: true,
			Pattern:  cardPattern,
			Hint:     "12 to 19 digits, spaces allowed",
			Custom:   checkLuhn,
		},
		"cardExpiry": {
			Required: true,
			Pattern:  expiryPattern,
			Hint:     "MM/YY",
			Custom:   checkExpiry(now),
		},
		"cardCvc": {
			Required: true,
			Pattern:  cvcPattern,
		},
	}
}

// postalCheck simulates the deliverability service: a short lookup delay,
// then a verdict. The 00000 prefix is the canned "no coverage" area.
func postalCheck(delay time.Duration) func(ctx context.Context, value string) (string, error) {
	return func(ctx context.Context, value string) (string, error) {
		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-timer.C:
			}
		}
		if strings.HasPrefix(value, "00000") {
			return "we do not deliver to this area yet", nil
		}
		return "", nil
	}
}

func checkLuhn(value string) string {
	digits := strings.ReplaceAll(value, " ", "")
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if d < 0 || d > 9 {
			return "card number can only contain digits"
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	if sum%10 != 0 {
		return "card number is not valid"
	}
	return ""
}

func checkExpiry(now func() time.Time) func(value string) string {
	return func(value string) string {
		m := expiryPattern.FindStringSubmatch(value)
		if m == nil {
			return "expiry must be MM/YY"
		}
		month, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])

		expiry := time.Date(2000+year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, 1, 0)
		if !expiry.After(now().UTC()) {
			return fmt.Sprintf("card expired %02d/%02d", month, year)
		}
		return ""
	}
}
