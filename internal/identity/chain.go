package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jonathan/briefly/internal/credits"
	"go.uber.org/zap"
)

// Resolver maps bearer credentials to a user id.
type Resolver interface {
	ResolveUserID(ctx context.Context, credentials string) (string, error)
}

// Chain tries each resolver in order and returns the first user id resolved.
type Chain []Resolver

// ResolveUserID implements Resolver. When every resolver rejects the
// credentials the joined errors are returned.
func (c Chain) ResolveUserID(ctx context.Context, credentials string) (string, error) {
	if len(c) == 0 {
		return "", errors.New("no identity resolvers configured")
	}

	var errs []error
	for _, r := range c {
		userID, err := r.ResolveUserID(ctx, credentials)
		if err == nil && userID != "" {
			return userID, nil
		}
		if err == nil {
			err = errors.New("credentials did not resolve to a user")
		}
		errs = append(errs, err)
	}
	return "", errors.Join(errs...)
}

// Provisioned opens a credit account with the starting grant the first time
// a user id resolves. Users created through password registration already
// hold an account, so OpenAccount leaves them alone.
type Provisioned struct {
	resolver Resolver
	ledger   credits.Ledger
	amount   int64
	logger   *zap.Logger

	seen sync.Map
}

// WithStartingCredits wraps resolver so new users receive amount credits.
// A non-positive amount disables provisioning.
func WithStartingCredits(resolver Resolver, ledger credits.Ledger, amount int64, logger *zap.Logger) *Provisioned {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provisioned{resolver: resolver, ledger: ledger, amount: amount, logger: logger}
}

// ResolveUserID implements Resolver. A ledger failure is logged and retried
// on the next request rather than rejecting valid credentials.
func (p *Provisioned) ResolveUserID(ctx context.Context, credentials string) (string, error) {
	userID, err := p.resolver.ResolveUserID(ctx, credentials)
	if err != nil {
		return "", err
	}
	if p.amount <= 0 {
		return userID, nil
	}
	if _, ok := p.seen.Load(userID); ok {
		return userID, nil
	}

	balance, opened, err := p.ledger.OpenAccount(ctx, userID, p.amount, credits.ReasonSignup)
	if err != nil {
		p.logger.Warn("failed to open credit account",
			zap.String("user_id", userID),
			zap.Error(fmt.Errorf("open account: %w", err)),
		)
		return userID, nil
	}
	p.seen.Store(userID, struct{}{})
	if opened {
		p.logger.Info("opened credit account",
			zap.String("user_id", userID),
			zap.Int64("balance", balance),
		)
	}
	return userID, nil
}
