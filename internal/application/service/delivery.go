package service

import (
	"strings"

	"github.com/lunchlokaal/catering-api/pkg/apperror"
)

// ErrNotServiceable is returned when no delivery is offered for a postal code.
var ErrNotServiceable = apperror.NewAppError(422, "We do not deliver to this postal code")

// DeliveryQuoter maps a postal code and a VAT-exclusive order amount to a
// delivery fee. The actual zone table lives outside this service.
type DeliveryQuoter interface {
	QuoteDelivery(postalCode string, orderAmount float64) (float64, error)
}

// FlatRateQuoter charges one flat fee inside a set of postal-code prefixes,
// waived above a free-delivery threshold.
type FlatRateQuoter struct {
	Fee       float64
	FreeAbove float64
	Prefixes  []string
}

func (q *FlatRateQuoter) QuoteDelivery(postalCode string, orderAmount float64) (float64, error) {
	code := strings.ToUpper(strings.ReplaceAll(postalCode, " ", ""))
	if code == "" {
		return 0, ErrNotServiceable
	}

	if len(q.Prefixes) > 0 {
		serviced := false
		for _, prefix := range q.Prefixes {
			if strings.HasPrefix(code, prefix) {
				serviced = true
				break
			}
		}
		if !serviced {
			return 0, ErrNotServiceable
		}
	}

	if q.FreeAbove > 0 && orderAmount >= q.FreeAbove {
		return 0, nil
	}
	return q.Fee, nil
}
