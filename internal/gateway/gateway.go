// Package gateway is the single entry point for credit-gated brief
// generation. It authenticates the caller, debits credits, composes and
// persists the brief, and refunds the debit if anything after it fails.
package gateway

import (
	"context"
	"fmt"

	"github.com/jonathan/briefly/internal/brief"
	"github.com/jonathan/briefly/internal/credits"
	"github.com/jonathan/briefly/internal/store"
	"github.com/jonathan/briefly/internal/types"
	"go.uber.org/zap"
)

// DefaultCost is the number of credits one generation consumes.
const DefaultCost int64 = 1

// Identity resolves opaque caller credentials to a user id.
type Identity interface {
	ResolveUserID(ctx context.Context, credentials string) (string, error)
}

// Composer synthesizes a brief from an intake.
type Composer interface {
	Compose(in types.ProjectIntake) (*types.Brief, error)
}

// Result is the outcome of a committed generation.
type Result struct {
	Brief            *types.Brief
	CreditsRemaining int64
}

// Gateway wires identity, ledger, composer and store together. It holds no
// mutable state of its own and is safe for concurrent use.
type Gateway struct {
	identity Identity
	ledger   credits.Ledger
	composer Composer
	store    store.BriefStore
	logger   *zap.Logger
	cost     int64
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the logger used for generation lifecycle events.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Gateway) { g.logger = logger }
}

// WithCost overrides the credits charged per generation.
func WithCost(cost int64) Option {
	return func(g *Gateway) { g.cost = cost }
}

// New creates a Gateway from its collaborators.
func New(identity Identity, ledger credits.Ledger, composer Composer, briefs store.BriefStore, opts ...Option) *Gateway {
	g := &Gateway{
		identity: identity,
		ledger:   ledger,
		composer: composer,
		store:    briefs,
		logger:   zap.NewNop(),
		cost:     DefaultCost,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Cost returns the credits charged per generation.
func (g *Gateway) Cost() int64 {
	return g.cost
}

// Generate authenticates credentials and then behaves like GenerateForUser.
func (g *Gateway) Generate(ctx context.Context, credentials string, in types.ProjectIntake) (*Result, error) {
	if g.identity == nil {
		return nil, &UnauthorizedError{Message: "no identity provider configured"}
	}
	if credentials == "" {
		return nil, &UnauthorizedError{Message: "missing credentials"}
	}

	userID, err := g.identity.ResolveUserID(ctx, credentials)
	if err != nil {
		return nil, &UnauthorizedError{Message: "invalid credentials", Cause: err}
	}
	if userID == "" {
		return nil, &UnauthorizedError{Message: "credentials did not resolve to a user"}
	}

	return g.GenerateForUser(ctx, userID, in)
}

// GenerateForUser runs a generation for an already authenticated user.
//
// An invalid intake is rejected before the ledger is touched. Once credits
// are debited, any later failure (including a panic) refunds them exactly
// once on a context that survives caller cancellation.
func (g *Gateway) GenerateForUser(ctx context.Context, userID string, in types.ProjectIntake) (result *Result, err error) {
	log := g.logger.With(zap.String("user_id", userID))

	if err := brief.Validate(in); err != nil {
		return nil, err
	}

	remaining, err := g.ledger.CheckAndDebit(ctx, userID, g.cost)
	if err != nil {
		log.Info("generation rejected", zap.Error(err))
		return nil, err
	}
	log.Debug("credits debited", zap.Int64("credits_remaining", remaining))

	committed := false
	defer func() {
		if committed {
			return
		}
		r := recover()
		refundErr := g.refund(ctx, userID)
		if r != nil {
			result = nil
			err = &CompositionError{Message: fmt.Sprintf("panic during generation: %v", r), RefundErr: refundErr}
			log.Error("generation panicked", zap.Any("panic", r), zap.NamedError("refund_error", refundErr))
			return
		}
		attachRefundErr(err, refundErr)
		log.Warn("generation rolled back", zap.Error(err))
	}()

	b, err := g.composer.Compose(in)
	if err != nil {
		return nil, &CompositionError{Message: "composer returned an error", Cause: err}
	}
	if b == nil {
		return nil, &CompositionError{Message: "composer returned no brief"}
	}
	b.UserID = userID

	if err := g.store.Append(ctx, b); err != nil {
		return nil, &StoreError{Message: "failed to persist brief", Cause: err}
	}

	committed = true
	log.Info("brief generated",
		zap.String("brief_id", b.ID),
		zap.String("category", b.Category),
		zap.Int64("credits_remaining", remaining))
	return &Result{Brief: b, CreditsRemaining: remaining}, nil
}

// refund returns the generation cost to userID. It runs detached from ctx so
// a cancelled request still gets its credits back.
func (g *Gateway) refund(ctx context.Context, userID string) error {
	balance, err := g.ledger.Refund(context.WithoutCancel(ctx), userID, g.cost)
	if err != nil {
		g.logger.Error("refund failed",
			zap.String("user_id", userID),
			zap.Int64("amount", g.cost),
			zap.Error(err))
		return err
	}
	g.logger.Debug("credits refunded",
		zap.String("user_id", userID),
		zap.Int64("credits_remaining", balance))
	return nil
}

func attachRefundErr(err, refundErr error) {
	if refundErr == nil {
		return
	}
	switch e := err.(type) {
	case *CompositionError:
		e.RefundErr = refundErr
	case *StoreError:
		e.RefundErr = refundErr
	}
}
