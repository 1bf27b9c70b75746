package repository

import (
	"context"

	"github.com/lunchlokaal/catering-api/internal/domain/entity"
)

// AccountingSink is the write-only boundary to the external bookkeeping
// system. Implementations must enforce their own transport timeout; a failed
// submit is safe to retry because exports are keyed by quote reference.
type AccountingSink interface {
	SubmitInvoice(ctx context.Context, doc *entity.InvoiceDocument) error
}
