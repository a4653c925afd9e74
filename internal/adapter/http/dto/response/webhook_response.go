package response

// WebhookAckResponse is the acknowledgement returned to the payment provider.
// Success mirrors the HTTP status so the provider can decide on redelivery.
type WebhookAckResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func WebhookAck() WebhookAckResponse {
	return WebhookAckResponse{Success: true}
}

func WebhookNack(msg string) WebhookAckResponse {
	return WebhookAckResponse{Success: false, Error: msg}
}
