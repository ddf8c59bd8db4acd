// Package otp exposes stored one-time-password enrollments. The evaluator
// only ever reads records; enrollment itself happens in the setup flow.
package otp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"credstate/internal/domain"
	"credstate/pkg/platform/sentinel"
)

// RecordStore persists OTP enrollments. Find returns sentinel.ErrNotFound for
// users who never enrolled.
type RecordStore interface {
	Find(ctx context.Context, identity domain.Identity) (*domain.OTPRecord, error)
	Save(ctx context.Context, record domain.OTPRecord) error
	Delete(ctx context.Context, identity domain.Identity) error
}

// Service implements ports.OTPService over a record store.
type Service struct {
	store  RecordStore
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New constructs the OTP service.
func New(store RecordStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("record store is required")
	}
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ReadRecord returns the stored enrollment, nil when the user never enrolled.
func (s *Service) ReadRecord(ctx context.Context, identity domain.Identity) (*domain.OTPRecord, error) {
	record, err := s.store.Find(ctx, identity)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read otp record: %w", err)
	}
	return record, nil
}
