package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lunchlokaal/catering-api/internal/domain/entity"
	"github.com/lunchlokaal/catering-api/internal/domain/enum"
	"github.com/lunchlokaal/catering-api/pkg/pagination"
)

// QuoteFilterParams represents filter parameters for listing quotes
type QuoteFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	PaymentStatus *enum.PaymentStatus
	UnsentOnly    bool
}

// QuoteRepository defines quote persistence operations
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	GetByReference(ctx context.Context, reference string) (*entity.Quote, error)
	Update(ctx context.Context, quote *entity.Quote) error
	List(ctx context.Context, params *QuoteFilterParams) ([]entity.Quote, int64, error)
}
