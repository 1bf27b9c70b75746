package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentStatus represents the payment state of a quote
type PaymentStatus int

const (
	PaymentStatusPending  PaymentStatus = 0
	PaymentStatusPaid     PaymentStatus = 1
	PaymentStatusFailed   PaymentStatus = 2
	PaymentStatusExpired  PaymentStatus = 3
	PaymentStatusCanceled PaymentStatus = 4
)

func (s PaymentStatus) String() string {
	names := [...]string{"pending", "paid", "failed", "expired", "canceled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "pending"
	}
	return names[s]
}

// IsTerminal reports whether no further automatic transitions are allowed.
func (s PaymentStatus) IsTerminal() bool {
	return s != PaymentStatusPending
}

// ParsePaymentStatus maps a payment-provider status string to an internal
// status. Unknown values return ok=false so callers can leave state unchanged.
func ParsePaymentStatus(str string) (PaymentStatus, bool) {
	switch str {
	case "pending":
		return PaymentStatusPending, true
	case "paid":
		return PaymentStatusPaid, true
	case "failed":
		return PaymentStatusFailed, true
	case "expired":
		return PaymentStatusExpired, true
	case "canceled":
		return PaymentStatusCanceled, true
	}
	return PaymentStatusPending, false
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	if parsed, ok := ParsePaymentStatus(str); ok {
		*s = parsed
	}
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}
