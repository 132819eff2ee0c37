package identity

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/currykit/websession/core/durable"
)

// CounterName is the fixed durable name of the persisted counter.
const CounterName = "identity_counter"

// suffixBytes yields a 32-character base64url suffix. The entropy is for
// collision avoidance between unrelated processes, not for security.
const suffixBytes = 24

// ErrGenerate is returned when a new identifier cannot be produced,
// typically because the durable counter location is unavailable.
var ErrGenerate = errors.New("failed to generate session identity")

// counterState is the persisted (epochSeconds, sequence) pair. Seq resets
// to 0 whenever Epoch advances and increments otherwise.
type counterState struct {
	Epoch int64 `json:"epoch"`
	Seq   int64 `json:"seq"`
}

// Generator produces session identifiers backed by a persisted counter.
type Generator struct {
	counter *durable.Value[counterState]
	now     func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGenerator creates a Generator whose counter is persisted in store
// under CounterName.
func NewGenerator(store durable.Store, opts ...Option) *Generator {
	g := &Generator{
		counter: durable.NewValue(store, CounterName, counterState{}),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// New returns a fresh session identifier of the form
// "<epoch>-<seq>-<random>". The counter update and the read of its new
// sequence happen as one atomic durable operation; an absent or corrupt
// counter starts over from (0, 0).
func (g *Generator) New(ctx context.Context) (string, error) {
	epoch := g.now().Unix()

	state, err := g.counter.Update(ctx, func(c counterState) (counterState, error) {
		if c.Epoch != epoch {
			return counterState{Epoch: epoch, Seq: 0}, nil
		}
		return counterState{Epoch: epoch, Seq: c.Seq + 1}, nil
	})
	if err != nil {
		return "", errors.Join(ErrGenerate, err)
	}

	suffix, err := randomSuffix()
	if err != nil {
		return "", errors.Join(ErrGenerate, err)
	}

	return fmt.Sprintf("%d-%d-%s", state.Epoch, state.Seq, suffix), nil
}

// randomSuffix draws a cookie-safe random string of 32 characters.
func randomSuffix() (string, error) {
	b := make([]byte, suffixBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
