package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/desuite/desuite-web/backend/internal/demorequest"
	"github.com/desuite/desuite-web/backend/internal/demorequest/repository"
	"github.com/desuite/desuite-web/backend/internal/notify"
	"github.com/desuite/desuite-web/backend/pkg/logger"
	"github.com/desuite/desuite-web/backend/pkg/metrics"
)

// Service defines the demo request operations used by the handler layer.
type Service interface {
	Submit(ctx context.Context, in demorequest.Input) (*demorequest.DemoRequest, error)
	List(ctx context.Context) ([]*demorequest.DemoRequest, error)
}

// DefaultNotifyTimeout bounds the operator notification sent after each submission.
const DefaultNotifyTimeout = 5 * time.Second

// Option configures the service.
type Option func(*demoService)

// WithNotifyTimeout sets how long Submit waits for the notifier.
func WithNotifyTimeout(d time.Duration) Option {
	return func(s *demoService) {
		if d > 0 {
			s.notifyTimeout = d
		}
	}
}

// New returns a Service storing into repo. A nil notifier disables notifications.
func New(repo repository.Repository, n notify.Notifier, opts ...Option) Service {
	if n == nil {
		n = notify.Nop{}
	}
	s := &demoService{repo: repo, notifier: n, notifyTimeout: DefaultNotifyTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type demoService struct {
	repo          repository.Repository
	notifier      notify.Notifier
	notifyTimeout time.Duration
}

// Submit validates in and stores it. Nothing is written when validation fails.
func (s *demoService) Submit(ctx context.Context, in demorequest.Input) (*demorequest.DemoRequest, error) {
	valid, err := demorequest.Validate(in)
	if err != nil {
		metrics.DemoRequestsInvalid.Inc()
		logger.Debugf("rejected demo request: %v", err)
		return nil, err
	}

	d := demorequest.New(valid)
	if err := s.repo.Create(ctx, d); err != nil {
		metrics.StorageFailures.WithLabelValues("create").Inc()
		return nil, err
	}
	metrics.DemoRequestsCreated.Inc()
	logger.Infow(fmt.Sprintf("New demo request from %s at %s", d.Email, d.Company), "id", d.ID)

	s.notify(ctx, d.Clone())
	return d, nil
}

// notify runs the notifier under its own deadline. The record is already stored, so a
// client disconnect does not cancel it and a slow notifier cannot hold the response.
func (s *demoService) notify(ctx context.Context, d *demorequest.DemoRequest) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.notifier.DemoRequested(ctx, d) }()
	select {
	case err := <-done:
		if err != nil {
			logger.Warnf("demo request %s stored but operator notification failed: %v", d.ID, err)
		}
	case <-ctx.Done():
		logger.Warnf("demo request %s stored but operator notification timed out after %s", d.ID, s.notifyTimeout)
	}
}

func (s *demoService) List(ctx context.Context) ([]*demorequest.DemoRequest, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		metrics.StorageFailures.WithLabelValues("list").Inc()
		return nil, err
	}
	return list, nil
}

// IsValidation reports whether err was caused by rejected input.
func IsValidation(err error) bool {
	var ve *demorequest.ValidationError
	return errors.As(err, &ve)
}
