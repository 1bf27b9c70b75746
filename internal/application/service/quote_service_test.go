package service

import (
	"context"
	"strings"
	"testing"

	"github.com/lunchlokaal/catering-api/internal/application/invoice"
	"github.com/lunchlokaal/catering-api/internal/application/pricing"
	"github.com/lunchlokaal/catering-api/internal/domain/entity"
	"github.com/lunchlokaal/catering-api/internal/domain/enum"
	"github.com/lunchlokaal/catering-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePDFRenderer struct {
	rendered int
}

func (r *fakePDFRenderer) RenderQuote(ctx context.Context, quote *entity.Quote, lines []entity.InvoiceLine) ([]byte, error) {
	r.rendered++
	return []byte("%PDF-1.4 " + quote.Reference), nil
}

func newQuoteFixture(delivery DeliveryQuoter) (*QuoteService, *fakeQuoteRepo, *fakePDFRenderer) {
	log := zap.NewNop()
	repo := newFakeQuoteRepo()
	catalogSvc := NewCatalogService(&fakeCatalogRepo{
		drinks: []entity.Drink{
			{ID: "d1", Name: "Fresh orange juice", Slug: "orange-juice", PriceExclVAT: 2.75},
		},
	}, nil, log)
	renderer := &fakePDFRenderer{}
	svc := NewQuoteService(repo, catalogSvc, pricing.NewEngine(log), invoice.NewBuilder(log), delivery, renderer, log)
	return svc, repo, renderer
}

func varietyOrder(count int) *entity.Order {
	return &entity.Order{
		SelectionType: enum.SelectionTypeVariety,
		Variety:       entity.VarietySelection{NonVega: count},
		Contact:       entity.ContactDetails{Name: "Anna de Vries", Email: "anna@example.com"},
	}
}

func TestPreviewPrice_VarietyOrder(t *testing.T) {
	svc, _, _ := newQuoteFixture(nil)

	// 10 sandwiches at 6.83 excl: subtotal 68.30, VAT rounds up to 6.15.
	breakdown, err := svc.PreviewPrice(context.Background(), varietyOrder(10))
	require.NoError(t, err)

	assert.InDelta(t, 68.30, breakdown.Subtotal, 1e-9)
	assert.InDelta(t, 6.15, breakdown.VAT, 1e-9)
	assert.InDelta(t, 74.45, breakdown.Total, 1e-9)
}

func TestCreateQuote_PersistsFrozenTotals(t *testing.T) {
	svc, repo, _ := newQuoteFixture(nil)

	order := varietyOrder(10)
	order.Delivery.Date = "2026-04-10"
	quote, err := svc.CreateQuote(context.Background(), order)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(quote.Reference, "Q"))
	assert.InDelta(t, 68.30, quote.Subtotal, 1e-9)
	assert.InDelta(t, 74.45, quote.Total, 1e-9)
	assert.Equal(t, enum.PaymentStatusPending, quote.PaymentStatus)
	require.NotNil(t, quote.DeliveryDate)
	assert.Equal(t, "2026-04-10", quote.DeliveryDate.Format("2006-01-02"))

	stored, err := repo.GetByReference(context.Background(), quote.Reference)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestCreateQuote_RejectsEmptyOrder(t *testing.T) {
	svc, _, _ := newQuoteFixture(nil)

	_, err := svc.CreateQuote(context.Background(), &entity.Order{
		SelectionType: enum.SelectionTypeVariety,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateQuote_ResolvesDeliveryFee(t *testing.T) {
	quoter := &FlatRateQuoter{Fee: 15.00, FreeAbove: 250.00, Prefixes: []string{"10"}}
	svc, _, _ := newQuoteFixture(quoter)

	order := varietyOrder(10)
	order.Delivery.PostalCode = "1015 CN"
	quote, err := svc.CreateQuote(context.Background(), order)
	require.NoError(t, err)

	// 68.30 + 15.00 = 83.30 excl, VAT ceil(7.497) = 7.50.
	assert.InDelta(t, 15.00, quote.Order.DeliveryCost, 1e-9)
	assert.InDelta(t, 68.30, quote.Subtotal, 1e-9)
	assert.InDelta(t, 90.80, quote.Total, 1e-9)
}

func TestCreateQuote_NotServiceablePostalCode(t *testing.T) {
	quoter := &FlatRateQuoter{Fee: 15.00, Prefixes: []string{"10"}}
	svc, _, _ := newQuoteFixture(quoter)

	order := varietyOrder(10)
	order.Delivery.PostalCode = "9700 AB"
	_, err := svc.CreateQuote(context.Background(), order)
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestGetQuote_UnknownReference(t *testing.T) {
	svc, _, _ := newQuoteFixture(nil)

	_, err := svc.GetQuote(context.Background(), "QMISSING")
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestRenderQuotePDF(t *testing.T) {
	svc, _, renderer := newQuoteFixture(nil)

	quote, err := svc.CreateQuote(context.Background(), varietyOrder(4))
	require.NoError(t, err)

	pdfBytes, err := svc.RenderQuotePDF(context.Background(), quote.Reference)
	require.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)
	assert.Equal(t, 1, renderer.rendered)
}
