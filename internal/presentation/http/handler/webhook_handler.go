package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lunchlokaal/catering-api/internal/application/service"
	"github.com/lunchlokaal/catering-api/internal/presentation/http/dto/request"
	"github.com/lunchlokaal/catering-api/internal/presentation/http/dto/response"
)

// WebhookHandler handles payment-provider webhook deliveries
type WebhookHandler struct {
	paymentService *service.PaymentService
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(paymentService *service.PaymentService) *WebhookHandler {
	return &WebhookHandler{paymentService: paymentService}
}

// HandlePayment handles a payment status webhook
// @Summary Payment Webhook
// @Description Apply a payment status change from the payment provider
// @Tags webhooks
// @Accept json
// @Produce json
// @Param request body request.PaymentWebhookRequest true "Webhook payload"
// @Success 200 {object} response.APIResponse
// @Router /webhooks/payment [post]
func (h *WebhookHandler) HandlePayment(c *gin.Context) {
	var req request.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	err := h.paymentService.HandlePaymentWebhook(c.Request.Context(), req.PaymentID, req.Status, req.Reference)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Webhook processed", nil)
}
