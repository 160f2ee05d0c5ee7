package promo

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

//go:generate mockgen -source=promo_service.go -destination=../mock/promo/promo_service_mock.go -package=mock
type Service interface {
	// Validate resolves a code string to a promo record. Unknown, inactive
	// and expired codes all resolve to (nil, nil); a lookup miss is not an
	// error. The only error returned is context cancellation.
	Validate(ctx context.Context, code string) (*Code, error)
	List(ctx context.Context) ([]Code, error)
}

type service struct {
	table  map[string]Code
	delay  time.Duration
	now    func() time.Time
	logger *zap.Logger
}

type Option func(*service)

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func WithTable(table map[string]Code) Option {
	return func(s *service) { s.table = table }
}

// NewService builds a validator over the static promotion table. The delay
// models the latency of the promotions backend this package stands in for.
func NewService(delay time.Duration, logger *zap.Logger, opts ...Option) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &service{
		table:  seedCodes(),
		delay:  delay,
		now:    time.Now,
		logger: logger.Named("promo.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Validate(ctx context.Context, code string) (*Code, error) {
	normalized := Normalize(code)

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	record, ok := s.table[normalized]
	if !ok {
		s.logger.Debug("promo lookup miss", zap.String("code", normalized))
		return nil, nil
	}
	if !record.Active {
		s.logger.Debug("promo inactive", zap.String("code", normalized))
		return nil, nil
	}
	if record.Expired(s.now()) {
		s.logger.Debug("promo expired", zap.String("code", normalized))
		return nil, nil
	}

	// Copy so callers can never reach into the table.
	out := record
	return &out, nil
}

func (s *service) List(ctx context.Context) ([]Code, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	now := s.now()
	codes := make([]Code, 0, len(s.table))
	for _, record := range s.table {
		if record.Active && !record.Expired(now) {
			codes = append(codes, record)
		}
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].Code < codes[j].Code })
	return codes, nil
}

func (s *service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Normalize trims whitespace and uppercases a user-entered code so casing and
// padding never affect lookup.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
