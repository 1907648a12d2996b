package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrInvalidSignature rejects a webhook whose payload or signature
	// could not be verified.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrInvalidPurchase is a verified payment event that names an unknown
	// product or carries no payer email.
	ErrInvalidPurchase     = fmt.Errorf("%w: purchase product or email", ErrNotFound)
	ErrAlreadyPurchased    = errors.New("product already purchased")
	ErrVerificationExpired = errors.New("download verification expired")
)

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
