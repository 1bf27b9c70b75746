package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lunchlokaal/catering-api/internal/domain/enum"
	"github.com/lunchlokaal/catering-api/internal/domain/repository"
	"github.com/lunchlokaal/catering-api/pkg/apperror"
	"go.uber.org/zap"
)

// Notifier sends the customer-facing order confirmation.
type Notifier interface {
	SendOrderConfirmation(toEmail, customerName, reference string, total float64) error
}

// Exporter queues the accounting export for a paid quote.
type Exporter interface {
	EnqueueExport(quoteID uuid.UUID)
}

// PaymentService maps payment-provider webhook deliveries onto quote state
// transitions.
type PaymentService struct {
	quoteRepo repository.QuoteRepository
	exporter  Exporter
	notifier  Notifier
	log       *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(quoteRepo repository.QuoteRepository, exporter Exporter, notifier Notifier, log *zap.Logger) *PaymentService {
	return &PaymentService{
		quoteRepo: quoteRepo,
		exporter:  exporter,
		notifier:  notifier,
		log:       log,
	}
}

// HandlePaymentWebhook applies one webhook delivery. Unknown statuses and
// repeated deliveries leave the quote untouched; the payment-status update is
// never rolled back by downstream side-effect failures, since the payment
// itself already happened.
func (s *PaymentService) HandlePaymentWebhook(ctx context.Context, paymentID, status, quoteReference string) error {
	quote, err := s.quoteRepo.GetByReference(ctx, quoteReference)
	if err != nil {
		return err
	}
	if quote == nil {
		return apperror.NewNotFoundError("Quote")
	}

	newStatus, known := enum.ParsePaymentStatus(status)
	if !known {
		s.log.Warn("unknown payment status, quote state unchanged",
			zap.String("reference", quoteReference),
			zap.String("status", status))
		return nil
	}
	if newStatus == enum.PaymentStatusPending {
		return nil
	}

	if quote.PaymentStatus.IsTerminal() {
		s.log.Info("webhook for already settled quote ignored",
			zap.String("reference", quoteReference),
			zap.String("current", quote.PaymentStatus.String()),
			zap.String("delivered", status))
		return nil
	}

	quote.PaymentStatus = newStatus
	quote.PaymentID = paymentID
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return err
	}

	s.log.Info("payment status updated",
		zap.String("reference", quoteReference),
		zap.String("status", newStatus.String()))

	if newStatus != enum.PaymentStatusPaid {
		// failed/expired/canceled: recorded, no financial side effects.
		return nil
	}

	if s.notifier != nil {
		if err := s.notifier.SendOrderConfirmation(
			quote.Order.Contact.Email, quote.Order.Contact.Name,
			quote.Reference, quote.Total,
		); err != nil {
			s.log.Error("order confirmation email failed",
				zap.String("reference", quote.Reference), zap.Error(err))
		}
	}

	if s.exporter != nil {
		s.exporter.EnqueueExport(quote.ID)
	}
	return nil
}
