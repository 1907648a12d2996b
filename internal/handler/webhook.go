package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"storefront-demo/internal/service"

	"github.com/labstack/echo/v4"
)

const stripeSignatureHeader = "Stripe-Signature"

type WebhookHandler struct {
	fulfillmentService service.FulfillmentService
}

func NewWebhookHandler(fulfillmentService service.FulfillmentService) *WebhookHandler {
	return &WebhookHandler{
		fulfillmentService: fulfillmentService,
	}
}

// StripeWebhook acknowledges with 200 everything it handled or chose to
// ignore. 400 tells Stripe not to retry; any other failure is a 500 and
// the event is redelivered.
func (h *WebhookHandler) StripeWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.String(http.StatusBadRequest, "Bad request")
	}

	result, err := h.fulfillmentService.HandleWebhook(ctx, body, c.Request().Header.Get(stripeSignatureHeader))
	switch {
	case errors.Is(err, service.ErrInvalidSignature):
		slog.WarnContext(ctx, "rejected stripe webhook", "error", err)
		return c.String(http.StatusBadRequest, "Bad request")
	case errors.Is(err, service.ErrInvalidPurchase):
		return c.String(http.StatusBadRequest, "Bad request")
	case err != nil:
		return fmt.Errorf("handle stripe webhook: %w", err)
	}

	slog.DebugContext(ctx, "stripe webhook handled", "event_id", result.EventID, "outcome", result.Outcome)
	return c.String(http.StatusOK, "OK")
}
