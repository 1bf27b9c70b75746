package service

import (
	"context"
	"time"

	"github.com/lunchlokaal/catering-api/internal/application/invoice"
	"github.com/lunchlokaal/catering-api/internal/application/pricing"
	"github.com/lunchlokaal/catering-api/internal/domain/entity"
	"github.com/lunchlokaal/catering-api/internal/domain/repository"
	"github.com/lunchlokaal/catering-api/pkg/apperror"
	"github.com/lunchlokaal/catering-api/pkg/pagination"
	"github.com/lunchlokaal/catering-api/pkg/utils"
	"go.uber.org/zap"
)

// QuotePDFRenderer renders a quote and its lines as a PDF document.
type QuotePDFRenderer interface {
	RenderQuote(ctx context.Context, quote *entity.Quote, lines []entity.InvoiceLine) ([]byte, error)
}

// QuoteService owns the quote lifecycle: pricing previews, freezing an order
// into a quote, and serving it back.
type QuoteService struct {
	quoteRepo  repository.QuoteRepository
	catalogSvc *CatalogService
	engine     *pricing.Engine
	builder    *invoice.Builder
	delivery   DeliveryQuoter
	pdf        QuotePDFRenderer
	log        *zap.Logger
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	catalogSvc *CatalogService,
	engine *pricing.Engine,
	builder *invoice.Builder,
	delivery DeliveryQuoter,
	pdf QuotePDFRenderer,
	log *zap.Logger,
) *QuoteService {
	return &QuoteService{
		quoteRepo:  quoteRepo,
		catalogSvc: catalogSvc,
		engine:     engine,
		builder:    builder,
		delivery:   delivery,
		pdf:        pdf,
		log:        log,
	}
}

// PreviewPrice prices an in-progress order for on-screen display. Nothing is
// persisted.
func (s *QuoteService) PreviewPrice(ctx context.Context, order *entity.Order) (pricing.Breakdown, error) {
	if err := pricing.ValidateOrder(order); err != nil {
		return pricing.Breakdown{}, err
	}
	catalog, err := s.catalogSvc.Snapshot(ctx)
	if err != nil {
		return pricing.Breakdown{}, err
	}
	if err := s.resolveDelivery(order, catalog); err != nil {
		return pricing.Breakdown{}, err
	}
	return s.engine.PriceOrder(order, catalog), nil
}

// CreateQuote freezes the order, prices it under the storefront regime and
// persists the quote. The stored total becomes the payment amount and, later,
// the reconciliation target for the accounting export.
func (s *QuoteService) CreateQuote(ctx context.Context, order *entity.Order) (*entity.Quote, error) {
	if err := pricing.ValidateOrder(order); err != nil {
		return nil, err
	}
	catalog, err := s.catalogSvc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.resolveDelivery(order, catalog); err != nil {
		return nil, err
	}

	breakdown := s.engine.PriceOrder(order, catalog)
	if breakdown.Total <= 0 {
		return nil, apperror.NewBadRequestError("Order is empty")
	}

	quote := &entity.Quote{
		Reference:    utils.NewQuoteReference(),
		Order:        *order,
		Subtotal:     breakdown.Subtotal,
		VAT:          breakdown.VAT,
		Total:        breakdown.Total,
		DeliveryDate: parseDeliveryDate(order.Delivery.Date),
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, err
	}

	s.log.Info("quote created",
		zap.String("reference", quote.Reference),
		zap.Float64("total", quote.Total))
	return quote, nil
}

// GetQuote retrieves a quote by its reference
func (s *QuoteService) GetQuote(ctx context.Context, reference string) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return quote, nil
}

// ListQuotes lists quotes for the back office
func (s *QuoteService) ListQuotes(ctx context.Context, params *repository.QuoteFilterParams) (*pagination.PaginatedResult[entity.Quote], error) {
	quotes, total, err := s.quoteRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(quotes, pag), nil
}

// RenderQuotePDF renders the quote document for download. The PDF shows the
// same lines the accounting export would send, reconciled against the stored
// total.
func (s *QuoteService) RenderQuotePDF(ctx context.Context, reference string) ([]byte, error) {
	quote, err := s.GetQuote(ctx, reference)
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalogSvc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	lines, err := s.builder.BuildLines(&quote.Order, catalog, quote.Total)
	if err != nil {
		return nil, err
	}
	return s.pdf.RenderQuote(ctx, quote, lines)
}

// resolveDelivery fills in the delivery fee from the zone quoter when the
// wizard has not set one yet. Orders without a postal code keep whatever the
// wizard sent (pickup, or fee precomputed client-side and re-validated here).
func (s *QuoteService) resolveDelivery(order *entity.Order, catalog *entity.Catalog) error {
	if order.Delivery.PostalCode == "" || s.delivery == nil {
		return nil
	}

	// Quote against the order amount before delivery.
	amountOnly := *order
	amountOnly.DeliveryCost = 0
	breakdown := s.engine.PriceOrder(&amountOnly, catalog)

	fee, err := s.delivery.QuoteDelivery(order.Delivery.PostalCode, breakdown.Subtotal)
	if err != nil {
		return err
	}
	order.DeliveryCost = fee
	return nil
}

func parseDeliveryDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}
