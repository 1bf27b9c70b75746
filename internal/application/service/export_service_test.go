package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lunchlokaal/catering-api/internal/application/invoice"
	"github.com/lunchlokaal/catering-api/internal/domain/entity"
	"github.com/lunchlokaal/catering-api/internal/domain/enum"
	"github.com/lunchlokaal/catering-api/pkg/jobqueue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCatalogRepo struct {
	products []entity.Product
	drinks   []entity.Drink
}

func (r *fakeCatalogRepo) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return r.products, nil
}

func (r *fakeCatalogRepo) ListDrinks(ctx context.Context) ([]entity.Drink, error) {
	return r.drinks, nil
}

func (r *fakeCatalogRepo) ReplaceProducts(ctx context.Context, products []entity.Product) error {
	r.products = products
	return nil
}

func (r *fakeCatalogRepo) ReplaceDrinks(ctx context.Context, drinks []entity.Drink) error {
	r.drinks = drinks
	return nil
}

type fakeSink struct {
	submitted []*entity.InvoiceDocument
	err       error
	done      chan struct{}
}

func (s *fakeSink) SubmitInvoice(ctx context.Context, doc *entity.InvoiceDocument) error {
	s.submitted = append(s.submitted, doc)
	if s.done != nil {
		close(s.done)
	}
	return s.err
}

type fakeAlerter struct {
	alerts []string
}

func (a *fakeAlerter) SendExportFailureAlert(reference string, cause error) error {
	a.alerts = append(a.alerts, reference)
	return nil
}

func exportTestQuote() *entity.Quote {
	q := paidTestQuote("Q9Z8Y7X6", enum.PaymentStatusPaid)
	q.CreatedAt = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	q.Order.SelectionType = enum.SelectionTypeVariety
	q.Order.Variety = entity.VarietySelection{NonVega: 4, Vega: 2}
	q.Order.Delivery = entity.DeliveryDetails{
		Street:     "Keizersgracht 1",
		PostalCode: "1015 CN",
		City:       "Amsterdam",
	}
	q.Order.Company = entity.CompanyDetails{Name: "Acme BV", VATNumber: "NL123456789B01"}
	// Storefront totals for 6 sandwiches: 6 x 6.83 = 40.98 excl, VAT 3.69.
	q.Subtotal = 40.98
	q.VAT = 3.69
	q.Total = 44.67
	return q
}

func newExportFixture(sink *fakeSink, alerter *fakeAlerter, quote *entity.Quote) (*ExportService, *fakeQuoteRepo) {
	log := zap.NewNop()
	repo := newFakeQuoteRepo(quote)
	catalogSvc := NewCatalogService(&fakeCatalogRepo{}, nil, log)
	svc := NewExportService(repo, catalogSvc, invoice.NewBuilder(log), sink, alerter, nil, log)
	return svc, repo
}

func TestExport_SubmitsInvoiceAndMarksSent(t *testing.T) {
	quote := exportTestQuote()
	sink := &fakeSink{}
	svc, _ := newExportFixture(sink, &fakeAlerter{}, quote)

	err := svc.Export(context.Background(), quote.ID)
	require.NoError(t, err)

	require.Len(t, sink.submitted, 1)
	doc := sink.submitted[0]
	assert.Equal(t, "Q9Z8Y7X6", doc.Reference)
	assert.Equal(t, "Acme BV", doc.Contact.Name)
	assert.Equal(t, "anna@example.com", doc.Contact.Email)
	assert.Equal(t, "Keizersgracht 1, 1015 CN Amsterdam", doc.Contact.Address)
	assert.Equal(t, quote.CreatedAt.AddDate(0, 0, 14), doc.DueDate)
	assert.NotEmpty(t, doc.Lines)

	assert.True(t, quote.AccountingSent)
	require.NotNil(t, quote.AccountingSentAt)
}

func TestExport_AlreadySentIsNoOp(t *testing.T) {
	quote := exportTestQuote()
	quote.AccountingSent = true
	sink := &fakeSink{}
	svc, repo := newExportFixture(sink, &fakeAlerter{}, quote)

	err := svc.Export(context.Background(), quote.ID)
	require.NoError(t, err)

	assert.Empty(t, sink.submitted)
	assert.Zero(t, repo.updates)
}

func TestExport_SinkFailureAlertsAndLeavesUnsent(t *testing.T) {
	quote := exportTestQuote()
	sink := &fakeSink{err: errors.New("accounting api unavailable")}
	alerter := &fakeAlerter{}
	svc, _ := newExportFixture(sink, alerter, quote)

	err := svc.Export(context.Background(), quote.ID)
	require.Error(t, err)

	assert.False(t, quote.AccountingSent)
	assert.Equal(t, []string{"Q9Z8Y7X6"}, alerter.alerts)
}

func TestExport_UnknownQuote(t *testing.T) {
	sink := &fakeSink{}
	svc, _ := newExportFixture(sink, &fakeAlerter{}, exportTestQuote())

	err := svc.Export(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Empty(t, sink.submitted)
}

func TestEnqueueExport_RunsInBackground(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quote := exportTestQuote()
	sink := &fakeSink{done: make(chan struct{})}
	log := zap.NewNop()
	repo := newFakeQuoteRepo(quote)
	catalogSvc := NewCatalogService(&fakeCatalogRepo{}, nil, log)
	queue := jobqueue.New(ctx, 4, 1, log)
	defer queue.Shutdown()

	svc := NewExportService(repo, catalogSvc, invoice.NewBuilder(log), sink, &fakeAlerter{}, queue, log)
	svc.EnqueueExport(quote.ID)

	select {
	case <-sink.done:
	case <-time.After(2 * time.Second):
		t.Fatal("export job did not run")
	}
}
