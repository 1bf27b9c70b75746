package accounting

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lunchlokaal/catering-api/internal/domain/entity"
	domainRepo "github.com/lunchlokaal/catering-api/internal/domain/repository"
	"go.uber.org/zap"
)

// Client submits invoices to the external bookkeeping system's XML API. The
// ledger computes its own VAT over the VAT-exclusive line amounts, which is
// why the invoice builder reconciles totals before anything reaches this
// client.
type Client struct {
	baseURL          string
	apiKey           string
	administrationID string
	httpClient       *http.Client
	log              *zap.Logger
}

// NewClient creates a new bookkeeping client with a bounded request timeout.
func NewClient(baseURL, apiKey, administrationID string, timeout time.Duration, log *zap.Logger) domainRepo.AccountingSink {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:          baseURL,
		apiKey:           apiKey,
		administrationID: administrationID,
		httpClient:       &http.Client{Timeout: timeout},
		log:              log,
	}
}

// salesInvoice is the XML document shape the bookkeeping API accepts.
type salesInvoice struct {
	XMLName          xml.Name           `xml:"SalesInvoice"`
	Reference        string             `xml:"Reference"`
	InvoiceDate      string             `xml:"Date"`
	DueDate          string             `xml:"DueDate"`
	Contact          salesInvoiceDebtor `xml:"Contact"`
	Lines            []salesInvoiceLine `xml:"InvoiceLines>InvoiceLine"`
	AdministrationID string             `xml:"AdministrationID,attr"`
}

type salesInvoiceDebtor struct {
	Name      string `xml:"ContactName"`
	Email     string `xml:"EmailAddress,omitempty"`
	Address   string `xml:"Address,omitempty"`
	VATNumber string `xml:"VATNumber,omitempty"`
}

type salesInvoiceLine struct {
	Description string  `xml:"Description"`
	Quantity    int     `xml:"Quantity"`
	UnitPrice   float64 `xml:"PriceExclVAT"`
	AccountCode string  `xml:"GLAccountCode"`
	VATType     string  `xml:"VATType"`
}

// SubmitInvoice posts one invoice document. Errors are returned verbatim so
// the export service can decide to alert the operator; nothing here retries.
func (c *Client) SubmitInvoice(ctx context.Context, doc *entity.InvoiceDocument) error {
	payload := salesInvoice{
		Reference:        doc.Reference,
		InvoiceDate:      doc.InvoiceDate.Format("2006-01-02"),
		DueDate:          doc.DueDate.Format("2006-01-02"),
		AdministrationID: c.administrationID,
		Contact: salesInvoiceDebtor{
			Name:      doc.Contact.Name,
			Email:     doc.Contact.Email,
			Address:   doc.Contact.Address,
			VATNumber: doc.Contact.VATNumber,
		},
	}
	for _, line := range doc.Lines {
		payload.Lines = append(payload.Lines, salesInvoiceLine{
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			AccountCode: line.AccountCode,
			VATType:     "LOW",
		})
	}

	body, err := xml.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal invoice: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/salesinvoices", bytes.NewReader(append([]byte(xml.Header), body...)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit invoice %s: %w", doc.Reference, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("bookkeeping API returned status %d for invoice %s: %s",
			resp.StatusCode, doc.Reference, string(snippet))
	}

	c.log.Info("invoice submitted to bookkeeping system",
		zap.String("reference", doc.Reference),
		zap.Int("lines", len(doc.Lines)))
	return nil
}
