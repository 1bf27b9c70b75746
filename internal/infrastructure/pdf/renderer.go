package pdf

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/lunchlokaal/catering-api/internal/domain/entity"
	"go.uber.org/zap"
)

// Renderer turns a quote into a PDF by printing an HTML template through
// headless Chrome. Rendering is bounded by a timeout because Chrome startup
// can hang in constrained containers.
type Renderer struct {
	chromePath string
	timeout    time.Duration
	log        *zap.Logger
}

// NewRenderer creates a new PDF renderer. chromePath may be empty to use the
// chromedp default browser discovery.
func NewRenderer(chromePath string, timeout time.Duration, log *zap.Logger) *Renderer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Renderer{chromePath: chromePath, timeout: timeout, log: log}
}

// RenderQuote renders the quote document as an A4 PDF.
func (r *Renderer) RenderQuote(ctx context.Context, quote *entity.Quote, lines []entity.InvoiceLine) ([]byte, error) {
	html, err := r.renderHTML(quote, lines)
	if err != nil {
		return nil, fmt.Errorf("render quote html: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // required when running in containers
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromeCtx, chromeCancel := chromedp.NewContext(allocCtx)
	defer chromeCancel()

	var pdf []byte
	err = chromedp.Run(chromeCtx,
		chromedp.Navigate("data:text/html;charset=utf-8,"+template.URLQueryEscaper(html)),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var printErr error
			pdf, _, printErr = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return printErr
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print quote %s to pdf: %w", quote.Reference, err)
	}

	r.log.Info("quote rendered to pdf",
		zap.String("reference", quote.Reference), zap.Int("bytes", len(pdf)))
	return pdf, nil
}

var quoteTmpl = template.Must(template.New("quote").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; color: #222; margin: 40px; }
  h1 { font-size: 22px; }
  table { width: 100%; border-collapse: collapse; margin-top: 24px; }
  th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid #ddd; }
  td.amount, th.amount { text-align: right; }
  .totals td { border: none; padding: 4px 8px; }
</style>
</head>
<body>
  <h1>Quote {{.Quote.Reference}}</h1>
  <p>{{.Quote.Order.Contact.Name}}<br>
  {{- if .Quote.Order.Company.Name}}{{.Quote.Order.Company.Name}}<br>{{end}}
  {{.Quote.Order.Delivery.Street}}, {{.Quote.Order.Delivery.PostalCode}} {{.Quote.Order.Delivery.City}}</p>
  <table>
    <tr><th>Description</th><th class="amount">Qty</th><th class="amount">Unit (excl. VAT)</th><th class="amount">Amount</th></tr>
    {{range .Lines}}
    <tr>
      <td>{{.Description}}</td>
      <td class="amount">{{.Quantity}}</td>
      <td class="amount">&euro; {{printf "%.2f" .UnitPrice}}</td>
      <td class="amount">&euro; {{printf "%.2f" .Amount}}</td>
    </tr>
    {{end}}
  </table>
  <table class="totals">
    <tr><td></td><td class="amount">Subtotal: &euro; {{printf "%.2f" .Quote.Subtotal}}</td></tr>
    {{if gt .Quote.Order.DeliveryCost 0.0}}<tr><td></td><td class="amount">Delivery: &euro; {{printf "%.2f" .Quote.Order.DeliveryCost}}</td></tr>{{end}}
    <tr><td></td><td class="amount">VAT (9%): &euro; {{printf "%.2f" .Quote.VAT}}</td></tr>
    <tr><td></td><td class="amount"><strong>Total: &euro; {{printf "%.2f" .Quote.Total}}</strong></td></tr>
  </table>
</body>
</html>`))

type pdfLine struct {
	Description string
	Quantity    int
	UnitPrice   float64
	Amount      float64
}

func (r *Renderer) renderHTML(quote *entity.Quote, lines []entity.InvoiceLine) (string, error) {
	rows := make([]pdfLine, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, pdfLine{
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Amount:      float64(line.Quantity) * line.UnitPrice,
		})
	}

	var buf bytes.Buffer
	err := quoteTmpl.Execute(&buf, struct {
		Quote *entity.Quote
		Lines []pdfLine
	}{quote, rows})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
