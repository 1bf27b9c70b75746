package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lunchlokaal/catering-api/internal/application/invoice"
	"github.com/lunchlokaal/catering-api/internal/domain/entity"
	"github.com/lunchlokaal/catering-api/internal/domain/repository"
	"github.com/lunchlokaal/catering-api/pkg/apperror"
	"github.com/lunchlokaal/catering-api/pkg/jobqueue"
	"go.uber.org/zap"
)

// Alerter notifies the operator about failed exports.
type Alerter interface {
	SendExportFailureAlert(reference string, cause error) error
}

// ExportService builds the invoice document for a paid quote and hands it to
// the bookkeeping sink. Exports run as deferred jobs, decoupled from the
// webhook request that triggered them; a failed export leaves the quote
// marked unsent so an operator can retry it.
type ExportService struct {
	quoteRepo  repository.QuoteRepository
	catalogSvc *CatalogService
	builder    *invoice.Builder
	sink       repository.AccountingSink
	alerter    Alerter
	queue      *jobqueue.Queue
	log        *zap.Logger
}

// NewExportService creates a new export service
func NewExportService(
	quoteRepo repository.QuoteRepository,
	catalogSvc *CatalogService,
	builder *invoice.Builder,
	sink repository.AccountingSink,
	alerter Alerter,
	queue *jobqueue.Queue,
	log *zap.Logger,
) *ExportService {
	return &ExportService{
		quoteRepo:  quoteRepo,
		catalogSvc: catalogSvc,
		builder:    builder,
		sink:       sink,
		alerter:    alerter,
		queue:      queue,
		log:        log,
	}
}

// EnqueueExport schedules a fire-and-forget export. A full queue is logged,
// not surfaced: the quote stays unsent and shows up in the back-office list
// of quotes awaiting export.
func (s *ExportService) EnqueueExport(quoteID uuid.UUID) {
	err := s.queue.Enqueue(func(ctx context.Context) {
		if exportErr := s.Export(ctx, quoteID); exportErr != nil {
			s.log.Error("accounting export failed",
				zap.String("quote_id", quoteID.String()), zap.Error(exportErr))
		}
	})
	if err != nil {
		s.log.Error("could not queue accounting export",
			zap.String("quote_id", quoteID.String()), zap.Error(err))
	}
}

// Export submits one quote to the bookkeeping system. It is idempotent on the
// sent flag: re-running for an already exported quote is a no-op, so a retry
// can never double-create an external invoice.
func (s *ExportService) Export(ctx context.Context, quoteID uuid.UUID) error {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return err
	}
	if quote == nil {
		return apperror.NewNotFoundError("Quote")
	}
	if quote.AccountingSent {
		s.log.Info("quote already exported, skipping",
			zap.String("reference", quote.Reference))
		return nil
	}

	catalog, err := s.catalogSvc.Snapshot(ctx)
	if err != nil {
		return err
	}

	lines, err := s.builder.BuildLines(&quote.Order, catalog, quote.Total)
	if err != nil {
		return fmt.Errorf("build invoice lines for %s: %w", quote.Reference, err)
	}

	doc := buildInvoiceDocument(quote, lines)
	if err := s.sink.SubmitInvoice(ctx, doc); err != nil {
		if s.alerter != nil {
			if alertErr := s.alerter.SendExportFailureAlert(quote.Reference, err); alertErr != nil {
				s.log.Error("export failure alert could not be sent",
					zap.String("reference", quote.Reference), zap.Error(alertErr))
			}
		}
		return err
	}

	now := time.Now()
	quote.AccountingSent = true
	quote.AccountingSentAt = &now
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		// The invoice is in the ledger but the flag did not stick; the next
		// retry will be skipped by the external system's duplicate check on
		// our reference. Loud log either way.
		s.log.Error("invoice exported but sent flag not persisted",
			zap.String("reference", quote.Reference), zap.Error(err))
		return err
	}

	s.log.Info("quote exported to bookkeeping system",
		zap.String("reference", quote.Reference), zap.Int("lines", len(lines)))
	return nil
}

func buildInvoiceDocument(quote *entity.Quote, lines []entity.InvoiceLine) *entity.InvoiceDocument {
	contactName := quote.Order.Company.Name
	if contactName == "" {
		contactName = quote.Order.Contact.Name
	}

	address := strings.TrimSpace(fmt.Sprintf("%s, %s %s",
		quote.Order.Delivery.Street,
		quote.Order.Delivery.PostalCode,
		quote.Order.Delivery.City))

	return &entity.InvoiceDocument{
		Contact: entity.InvoiceContact{
			Name:      contactName,
			Email:     quote.Order.Contact.Email,
			Address:   address,
			VATNumber: quote.Order.Company.VATNumber,
		},
		Reference:   quote.Reference,
		Lines:       lines,
		InvoiceDate: quote.CreatedAt,
		DueDate:     quote.DueDate(),
	}
}
