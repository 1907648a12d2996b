package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"storefront-demo/internal/client"
	"storefront-demo/internal/metrics"
	"storefront-demo/internal/model"
	"storefront-demo/internal/repository"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DownloadLinkTTL is how long a purchase's download verification stays valid.
const DownloadLinkTTL = 24 * time.Hour

type FulfillmentOutcome string

const (
	FulfillmentIgnored   FulfillmentOutcome = "ignored"
	FulfillmentFulfilled FulfillmentOutcome = "fulfilled"
	// FulfillmentResumed is a redelivery of an event whose writes were done
	// but whose receipt email had not gone out yet.
	FulfillmentResumed   FulfillmentOutcome = "resumed"
	FulfillmentDuplicate FulfillmentOutcome = "duplicate"
)

type FulfillmentResult struct {
	Outcome        FulfillmentOutcome
	EventID        string
	OrderID        string
	VerificationID string
}

type FulfillmentService interface {
	// HandleWebhook verifies and applies one payment gateway delivery.
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*FulfillmentResult, error)
}

type fulfillmentServiceImpl struct {
	db               *gorm.DB
	stripeClient     client.StripeClient
	mailer           client.Mailer
	serviceBaseUrl   string
	productRepo      repository.ProductRepository
	userRepo         repository.UserRepository
	orderRepo        repository.OrderRepository
	verificationRepo repository.DownloadVerificationRepository
	webhookEventRepo repository.WebhookEventRepository
	metrics          metrics.Recorder
	logger           *slog.Logger
	now              func() time.Time
}

func NewFulfillmentService(
	db *gorm.DB,
	stripeClient client.StripeClient,
	mailer client.Mailer,
	serviceBaseUrl string,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	verificationRepo repository.DownloadVerificationRepository,
	webhookEventRepo repository.WebhookEventRepository,
	recorder metrics.Recorder,
	logger *slog.Logger,
) FulfillmentService {
	return &fulfillmentServiceImpl{
		db:               db,
		stripeClient:     stripeClient,
		mailer:           mailer,
		serviceBaseUrl:   serviceBaseUrl,
		productRepo:      productRepo,
		userRepo:         userRepo,
		orderRepo:        orderRepo,
		verificationRepo: verificationRepo,
		webhookEventRepo: webhookEventRepo,
		metrics:          recorder,
		logger:           logger,
		now:              time.Now,
	}
}

// HandleWebhook runs the purchase saga for charge.succeeded events:
//  1. user upsert, order, download verification and the event ledger row
//     are written in one transaction
//  2. the receipt email is sent
//  3. the ledger row is marked notified
//
// A redelivered event resumes at step 2 when step 3 never happened, and is
// acknowledged without side effects otherwise.
func (s *fulfillmentServiceImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) (*FulfillmentResult, error) {
	event, err := s.stripeClient.ConstructEvent(payload, signature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	s.metrics.RecordWebhookEvent(event.Type)
	log := s.logger.With("event_id", event.ID, "event_type", event.Type)

	if event.Type != client.EventChargeSucceeded || event.Charge == nil {
		log.Debug("webhook event ignored")
		return &FulfillmentResult{Outcome: FulfillmentIgnored, EventID: event.ID}, nil
	}
	charge := event.Charge
	log = log.With("product_id", charge.ProductID)

	recorded, err := s.webhookEventRepo.Find(ctx, event.ID)
	switch {
	case err == nil && recorded.NotifiedAt != nil:
		s.metrics.RecordDuplicateDelivery()
		log.Info("webhook event already fulfilled")
		return &FulfillmentResult{
			Outcome:        FulfillmentDuplicate,
			EventID:        event.ID,
			OrderID:        recorded.OrderID,
			VerificationID: recorded.VerificationID,
		}, nil
	case err == nil:
		return s.resume(ctx, log, charge, recorded)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("find webhook event: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, charge.ProductID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil || charge.Email == "" {
		log.Warn("charge has unknown product or no email")
		return nil, ErrInvalidPurchase
	}

	now := s.now()
	order := &model.Order{
		ID:               uuid.NewString(),
		ProductID:        product.ID,
		PricePaidInCents: charge.AmountInCents,
		CreatedAt:        now,
	}
	verification := &model.DownloadVerification{
		ID:        uuid.NewString(),
		ProductID: product.ID,
		ExpiresAt: now.Add(DownloadLinkTTL),
		CreatedAt: now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.Upsert(ctx, tx, charge.Email)
		if err != nil {
			return fmt.Errorf("upsert user: %w", err)
		}
		order.UserID = user.ID

		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		if err := s.verificationRepo.Create(ctx, tx, verification); err != nil {
			return fmt.Errorf("create download verification: %w", err)
		}

		// primary key on the event id: a concurrent delivery of the same
		// event fails here and rolls back its writes
		err = s.webhookEventRepo.Create(ctx, tx, &model.WebhookEvent{
			EventID:        event.ID,
			EventType:      event.Type,
			OrderID:        order.ID,
			VerificationID: verification.ID,
			ProcessedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("record webhook event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record purchase: %w", err)
	}

	s.metrics.RecordPurchaseFulfilled()
	log.Info("purchase recorded", "order_id", order.ID, "verification_id", verification.ID)

	if err := s.notify(ctx, event.ID, charge, product, verification); err != nil {
		return nil, err
	}

	return &FulfillmentResult{
		Outcome:        FulfillmentFulfilled,
		EventID:        event.ID,
		OrderID:        order.ID,
		VerificationID: verification.ID,
	}, nil
}

func (s *fulfillmentServiceImpl) resume(ctx context.Context, log *slog.Logger, charge *client.Charge, recorded *model.WebhookEvent) (*FulfillmentResult, error) {
	verification, err := s.verificationRepo.FindByID(ctx, recorded.VerificationID)
	if err != nil {
		return nil, fmt.Errorf("find download verification: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, verification.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("product removed before receipt was sent")
			return nil, ErrInvalidPurchase
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	log.Info("resuming receipt for recorded purchase", "order_id", recorded.OrderID)
	if err := s.notify(ctx, recorded.EventID, charge, product, verification); err != nil {
		return nil, err
	}

	return &FulfillmentResult{
		Outcome:        FulfillmentResumed,
		EventID:        recorded.EventID,
		OrderID:        recorded.OrderID,
		VerificationID: recorded.VerificationID,
	}, nil
}

func (s *fulfillmentServiceImpl) notify(ctx context.Context, eventID string, charge *client.Charge, product *model.Product, verification *model.DownloadVerification) error {
	err := s.mailer.SendPurchaseReceipt(ctx, &client.PurchaseReceipt{
		To:               charge.Email,
		ProductName:      product.Name,
		PricePaidInCents: charge.AmountInCents,
		DownloadURL:      s.downloadURL(verification.ID),
		ExpiresAt:        verification.ExpiresAt,
	})
	if err != nil {
		s.metrics.RecordNotificationFailure()
		return fmt.Errorf("send purchase receipt: %w", err)
	}

	if err := s.webhookEventRepo.MarkNotified(ctx, eventID, s.now()); err != nil {
		return fmt.Errorf("mark webhook event notified: %w", err)
	}
	return nil
}

func (s *fulfillmentServiceImpl) downloadURL(verificationID string) string {
	return strings.TrimSuffix(s.serviceBaseUrl, "/") + "/api/products/download/" + verificationID
}
