package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/lunchlokaal/catering-api/internal/application/service"
	"github.com/lunchlokaal/catering-api/internal/domain/enum"
	"github.com/lunchlokaal/catering-api/internal/domain/repository"
	"github.com/lunchlokaal/catering-api/internal/presentation/http/dto/request"
	"github.com/lunchlokaal/catering-api/internal/presentation/http/dto/response"
	"github.com/lunchlokaal/catering-api/pkg/pagination"
)

// QuoteHandler handles quote-related HTTP requests
type QuoteHandler struct {
	quoteService  *service.QuoteService
	exportService *service.ExportService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService, exportService *service.ExportService) *QuoteHandler {
	return &QuoteHandler{
		quoteService:  quoteService,
		exportService: exportService,
	}
}

// PreviewPrice handles pricing an in-progress order
// @Summary Price Order
// @Description Price an order for on-screen display without persisting it
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body request.OrderRequest true "Order data"
// @Success 200 {object} response.APIResponse
// @Router /quotes/price [post]
func (h *QuoteHandler) PreviewPrice(c *gin.Context) {
	var req request.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	breakdown, err := h.quoteService.PreviewPrice(c.Request.Context(), req.ToEntity())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order priced successfully", breakdown)
}

// Create handles creating a quote from an order
// @Summary Create Quote
// @Description Freeze an order into a quote with a payable total
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body request.OrderRequest true "Order data"
// @Success 201 {object} response.APIResponse
// @Router /quotes [post]
func (h *QuoteHandler) Create(c *gin.Context) {
	var req request.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Contact.Name == "" || req.Contact.Email == "" {
		response.BadRequest(c, "Contact name and email are required")
		return
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), req.ToEntity())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote created successfully", quote)
}

// Get handles getting a single quote
// @Summary Get Quote
// @Description Get a quote by its reference
// @Tags quotes
// @Produce json
// @Param reference path string true "Quote reference"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{reference} [get]
func (h *QuoteHandler) Get(c *gin.Context) {
	quote, err := h.quoteService.GetQuote(c.Request.Context(), c.Param("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved successfully", quote)
}

// List handles listing quotes for the back office
// @Summary List Quotes
// @Description Get all quotes with pagination and filtering
// @Tags quotes
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search by quote reference"
// @Param status query string false "Payment status filter"
// @Param unsent query bool false "Only paid quotes not yet exported"
// @Success 200 {object} response.APIResponse
// @Router /quotes [get]
func (h *QuoteHandler) List(c *gin.Context) {
	page := 1
	perPage := 15
	if p := c.Query("page"); p != "" {
		if parsed, err := parsePositiveInt(p); err == nil {
			page = parsed
		}
	}
	if pp := c.Query("per_page"); pp != "" {
		if parsed, err := parsePositiveInt(pp); err == nil {
			perPage = parsed
		}
	}

	var status *enum.PaymentStatus
	if s := c.Query("status"); s != "" {
		if parsed, ok := enum.ParsePaymentStatus(s); ok {
			status = &parsed
		}
	}

	result, err := h.quoteService.ListQuotes(c.Request.Context(), &repository.QuoteFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:        c.Query("search"),
		PaymentStatus: status,
		UnsentOnly:    c.Query("unsent") == "true",
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotes retrieved successfully", result)
}

// DownloadPDF handles rendering a quote as a PDF document
// @Summary Download Quote PDF
// @Description Render the quote document as a PDF
// @Tags quotes
// @Produce application/pdf
// @Param reference path string true "Quote reference"
// @Success 200 {file} binary
// @Router /quotes/{reference}/pdf [get]
func (h *QuoteHandler) DownloadPDF(c *gin.Context) {
	reference := c.Param("reference")

	pdfBytes, err := h.quoteService.RenderQuotePDF(c.Request.Context(), reference)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, reference))
	c.Data(200, "application/pdf", pdfBytes)
}

// Export handles an operator-triggered accounting export retry
// @Summary Export Quote
// @Description Submit the quote to the bookkeeping system; no-op when already sent
// @Tags quotes
// @Produce json
// @Param reference path string true "Quote reference"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{reference}/export [post]
func (h *QuoteHandler) Export(c *gin.Context) {
	quote, err := h.quoteService.GetQuote(c.Request.Context(), c.Param("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}

	// Synchronous on purpose: the operator retrying a failed export wants to
	// see the outcome, not a queued acknowledgement.
	if err := h.exportService.Export(c.Request.Context(), quote.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote exported successfully", nil)
}
