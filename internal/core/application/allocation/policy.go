package allocation

import (
	"math/rand"
	"sync"

	"dispatch/internal/core/domain/model/protocol"
)

// BidPolicy decides whether an agent pursues an announced course.
// The production policy is probabilistic; tests inject deterministic ones.
type BidPolicy interface {
	ShouldBid(announcement protocol.Announcement) bool
}

// RandomPolicy bids with a fixed probability, independently per course.
type RandomPolicy struct {
	probability float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPolicy creates a policy that bids with the given probability.
// Probability is clamped to [0, 1]. The rand source is owned by the policy
// and serialized internally; pass a seeded source for reproducible runs.
func NewRandomPolicy(probability float64, source rand.Source) *RandomPolicy {
	if probability < 0 {
		probability = 0
	}
	if probability > 1 {
		probability = 1
	}

	return &RandomPolicy{
		probability: probability,
		rng:         rand.New(source),
	}
}

// ShouldBid draws once per announcement.
func (p *RandomPolicy) ShouldBid(_ protocol.Announcement) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.rng.Float64() < p.probability
}

// PolicyFunc adapts a plain function to the BidPolicy interface.
type PolicyFunc func(announcement protocol.Announcement) bool

// ShouldBid calls the wrapped function.
func (f PolicyFunc) ShouldBid(announcement protocol.Announcement) bool {
	return f(announcement)
}

// AlwaysBid returns a policy that bids on every announcement.
func AlwaysBid() BidPolicy {
	return PolicyFunc(func(protocol.Announcement) bool { return true })
}

// NeverBid returns a policy that ignores every announcement.
func NeverBid() BidPolicy {
	return PolicyFunc(func(protocol.Announcement) bool { return false })
}
