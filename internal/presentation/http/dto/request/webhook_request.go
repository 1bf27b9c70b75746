package request

// PaymentWebhookRequest is the payload the payment provider posts when a
// payment changes state. Unknown status values are accepted and ignored
// downstream, so a provider rollout of new statuses never bounces webhooks.
type PaymentWebhookRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
	Status    string `json:"status" binding:"required"`
	Reference string `json:"reference" binding:"required"`
}
