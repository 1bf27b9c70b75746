package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lunchlokaal/catering-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Quote is a persisted, frozen snapshot of an Order together with the totals
// that were quoted to the customer. After creation only the payment and
// accounting status fields ever change.
type Quote struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Reference string    `gorm:"size:100;uniqueIndex;not null" json:"reference"`
	Order     Order     `gorm:"serializer:json;not null" json:"order"`

	// Storefront-regime totals frozen at creation time. Total is what the
	// customer pays online, so it is also the reconciliation target for the
	// accounting export.
	Subtotal float64 `gorm:"type:decimal(15,2);not null" json:"subtotal"`
	VAT      float64 `gorm:"type:decimal(15,2);not null" json:"vat"`
	Total    float64 `gorm:"type:decimal(15,2);not null" json:"total"`

	PaymentStatus enum.PaymentStatus `gorm:"default:0" json:"payment_status"`
	PaymentID     string             `gorm:"size:100" json:"payment_id,omitempty"`

	AccountingSent   bool       `gorm:"default:false" json:"accounting_sent"`
	AccountingSentAt *time.Time `json:"accounting_sent_at,omitempty"`

	DeliveryDate *time.Time     `gorm:"type:date" json:"delivery_date,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new quote
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// DueDate returns the invoice due date: delivery date + 14 days, falling back
// to creation date + 14 days when no delivery date is set.
func (q *Quote) DueDate() time.Time {
	base := q.CreatedAt
	if q.DeliveryDate != nil {
		base = *q.DeliveryDate
	}
	return base.AddDate(0, 0, 14)
}
