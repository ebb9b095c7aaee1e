package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	log "github.com/sirupsen/logrus"
)

const maxRetryDelay = 2 * time.Second

type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, BaseDelay: 50 * time.Millisecond}
}

// Retry calls fn until it succeeds, fails with anything other than
// ErrStoreUnavailable, or the attempts are used up. The delay doubles
// after every failure.
func Retry(ctx context.Context, p RetryPolicy, fn func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.BaseDelay

	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil || !errors.Is(err, domain.ErrStoreUnavailable) {
			return err
		}
		if i == attempts-1 {
			break
		}
		log.WithError(err).WithField("attempt", i+1).Warn("store unavailable, retrying")

		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
		if delay > maxRetryDelay {
			delay = maxRetryDelay
		}
	}
	return err
}
