package client

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"storefront-demo/internal/config"
	"storefront-demo/internal/format"
	"time"

	"github.com/resend/resend-go/v2"
)

type Mailer interface {
	SendPurchaseReceipt(ctx context.Context, receipt *PurchaseReceipt) error
}

type PurchaseReceipt struct {
	To               string
	ProductName      string
	PricePaidInCents int64
	DownloadURL      string
	ExpiresAt        time.Time
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`<h1>Thank you for your purchase!</h1>
<p>You bought <strong>{{.ProductName}}</strong> for {{.Price}}.</p>
<p><a href="{{.DownloadURL}}">Download {{.ProductName}}</a></p>
<p>The link expires on {{.ExpiresAt}}.</p>
`))

type resendMailerImpl struct {
	client *resend.Client
	from   string
}

func NewResendMailer(resendCfg *config.Resend) Mailer {
	return newResendMailer(resend.NewClient(resendCfg.APIKey), resendCfg.SenderEmail)
}

func newResendMailer(c *resend.Client, senderEmail string) *resendMailerImpl {
	return &resendMailerImpl{
		client: c,
		from:   fmt.Sprintf("Support <%s>", senderEmail),
	}
}

func (m *resendMailerImpl) SendPurchaseReceipt(ctx context.Context, receipt *PurchaseReceipt) error {
	var body bytes.Buffer
	err := receiptTemplate.Execute(&body, map[string]string{
		"ProductName": receipt.ProductName,
		"Price":       format.Currency(receipt.PricePaidInCents),
		"DownloadURL": receipt.DownloadURL,
		"ExpiresAt":   receipt.ExpiresAt.UTC().Format(time.RFC1123),
	})
	if err != nil {
		return fmt.Errorf("render receipt: %w", err)
	}

	_, err = m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{receipt.To},
		Subject: fmt.Sprintf("Your purchase of %s", receipt.ProductName),
		Html:    body.String(),
	})
	if err != nil {
		return fmt.Errorf("resend send email: %w", err)
	}

	return nil
}
