package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"storefront-demo/internal/client"
	"storefront-demo/internal/model"
	"storefront-demo/internal/storage"

	"github.com/stripe/stripe-go/v82/webhook"
	"gorm.io/gorm"
)

// --- fakes ---

type memStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	deleteErr error
	putErr    error
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (m *memStore) Put(ctx context.Context, key string, r io.Reader) error {
	if m.putErr != nil {
		return m.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = b
	return nil
}

func (m *memStore) Open(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[key]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", storage.ErrNotExist, key)
	}
	return io.NopCloser(bytes.NewReader(b)), int64(len(b)), nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return fmt.Errorf("%w: %s", storage.ErrNotExist, key)
	}
	delete(m.objects, key)
	return nil
}

func (m *memStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

func (m *memStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

type fakeStripe struct {
	client.StripeClient
	createFn func(ctx context.Context, amountInCents int64, productID string) (*client.PaymentIntent, error)
	getFn    func(ctx context.Context, id string) (*client.PaymentIntent, error)
}

func (f *fakeStripe) CreatePaymentIntent(ctx context.Context, amountInCents int64, productID string) (*client.PaymentIntent, error) {
	return f.createFn(ctx, amountInCents, productID)
}

func (f *fakeStripe) GetPaymentIntent(ctx context.Context, id string) (*client.PaymentIntent, error) {
	return f.getFn(ctx, id)
}

type fakeMailer struct {
	mu       sync.Mutex
	sent     []*client.PurchaseReceipt
	failures int // fail this many sends before succeeding
}

var errMailDown = errors.New("mail provider unavailable")

func (f *fakeMailer) SendPurchaseReceipt(ctx context.Context, receipt *client.PurchaseReceipt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return errMailDown
	}
	f.sent = append(f.sent, receipt)
	return nil
}

func (f *fakeMailer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// --- helpers ---

const testWebhookSecret = "whsec_service_test"

func signedPayload(t *testing.T, payload string) (string, []byte) {
	t.Helper()
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
	})
	return signed.Header, signed.Payload
}

func chargeSucceeded(eventID, productID, email string, amount int64) string {
	billing := `{}`
	if email != "" {
		billing = fmt.Sprintf(`{"email":%q}`, email)
	}
	return fmt.Sprintf(`{
  "id": %q,
  "object": "event",
  "type": "charge.succeeded",
  "data": {"object": {
    "id": "ch_%s",
    "object": "charge",
    "amount": %d,
    "metadata": {"productId": %q},
    "billing_details": %s
  }}
}`, eventID, eventID, amount, productID, billing)
}

func countRows(t *testing.T, db *gorm.DB, value any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(value).Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

func insertProduct(t *testing.T, db *gorm.DB, p *model.Product) *model.Product {
	t.Helper()
	if p.Description == "" {
		p.Description = p.Name + " description"
	}
	if p.PriceInCents == 0 {
		p.PriceInCents = 1999
	}
	if p.FilePath == "" {
		p.FilePath = "products/" + p.ID + ".pdf"
	}
	if p.ImagePath == "" {
		p.ImagePath = "/products/" + p.ID + ".png"
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("insert product: %v", err)
	}
	return p
}
