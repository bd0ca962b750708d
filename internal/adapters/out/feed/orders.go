// Package feed adapts the ancillary data sources feeding the allocation
// protocol: the denormalised orders file produced by the upstream data
// pipeline, and the courier roster.
//
// Both sources are read-only. The feed assigns each order a reward drawn
// uniformly from the configured range at announce time; the upstream
// records carry no pricing.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/course"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

const (
	rewardMin = 5.00
	rewardMax = 15.00
)

var _ ports.CourseFeed = (*OrdersFeed)(nil)

// orderRecord is one entry of the denormalised orders file: an order joined
// with its restaurant and client so a course can be announced without
// further lookups.
type orderRecord struct {
	OrderID    string `json:"order_id"`
	Restaurant struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	} `json:"restaurant"`
	Client struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	} `json:"client"`
}

// OrdersFeed supplies courses from a denormalised orders JSON file.
// Orders are handed out in file order, each at most once.
type OrdersFeed struct {
	mu      sync.Mutex
	records []orderRecord
	next    int
	rng     *rand.Rand
}

// NewOrdersFeed loads the orders file and returns a feed over its records.
// The rand source prices the courses; pass a seeded source for
// reproducible runs.
func NewOrdersFeed(path string, source rand.Source) (*OrdersFeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading orders file: %w", err)
	}

	var records []orderRecord
	if err = json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing orders file %s: %w", path, err)
	}

	return &OrdersFeed{
		records: records,
		rng:     rand.New(source),
	}, nil
}

// Len returns the number of orders remaining in the feed.
func (f *OrdersFeed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.records) - f.next
}

// Next returns the next order as a pending course. The reward is drawn
// uniformly from [5.00, 15.00] and rounded to cents. Returns an
// object-not-found error once the feed is exhausted.
func (f *OrdersFeed) Next(_ context.Context) (*course.Course, error) {
	record, reward, err := f.take()
	if err != nil {
		return nil, err
	}

	id, err := kernel.UUIDFromString(record.OrderID)
	if err != nil {
		return nil, fmt.Errorf("order %q: %w", record.OrderID, err)
	}

	money, err := kernel.MoneyFromFloat(reward)
	if err != nil {
		return nil, err
	}

	return course.NewCourse(
		id,
		record.Restaurant.Address,
		record.Client.Address,
		money,
		time.Now(),
	)
}

func (f *OrdersFeed) take() (orderRecord, float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.next >= len(f.records) {
		return orderRecord{}, 0, errs.NewObjectNotFoundError("order", "next")
	}

	record := f.records[f.next]
	f.next++

	reward := rewardMin + f.rng.Float64()*(rewardMax-rewardMin)
	return record, reward, nil
}
