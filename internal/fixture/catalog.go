// Package fixture is the offline data source: a static table of known topics
// and their analyses, a synthesizer for unseen topics, and a latency simulator.
//
// Mock mode in the gateway serves everything from here.
package fixture

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/meeran-official/news-analyzer/internal/analysis"
)

// Catalog serves fixture data. The zero value is not usable; call New.
// Safe for concurrent use as long as the injected rand/sleep functions are.
type Catalog struct {
	byTopic map[string]analysis.Record
	intn    func(n int) int
	sleep   func(ctx context.Context, d time.Duration) error
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithRand replaces the source of randomness used for donor selection, random
// topics and delays. intn must return a value in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(c *Catalog) { c.intn = intn }
}

// WithSleep replaces the delay primitive (tests use a no-op).
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Catalog) { c.sleep = sleep }
}

// New builds a catalog over the built-in records.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		byTopic: make(map[string]analysis.Record, len(records)),
		intn:    rand.Intn,
		sleep:   sleepContext,
	}
	for _, r := range records {
		c.byTopic[r.Topic] = r
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup returns the catalog record for topic. Matching is exact and
// case-sensitive.
func (c *Catalog) Lookup(topic string) (analysis.Record, bool) {
	r, ok := c.byTopic[topic]
	return r, ok
}

// Analysis returns the catalog record for topic, or a synthesized one.
func (c *Catalog) Analysis(topic string) analysis.Record {
	if r, ok := c.Lookup(topic); ok {
		return r
	}
	return c.Synthesize(topic)
}

// Synthesize builds a record for an arbitrary topic by borrowing a donor
// record and substituting the topic string into its text.
//
// Substitution is literal: a donor field that does not mention the donor's own
// topic comes through unchanged.
func (c *Catalog) Synthesize(topic string) analysis.Record {
	donors := make([]analysis.Record, 0, len(records))
	for _, r := range records {
		if r.Topic != topic {
			donors = append(donors, r)
		}
	}
	if len(donors) == 0 {
		donors = records
	}
	donor := donors[c.intn(len(donors))]

	sub := func(s string) string {
		return strings.ReplaceAll(s, donor.Topic, topic)
	}
	return analysis.Record{
		Topic:                 topic,
		Summary:               sub(donor.Summary),
		AggregatedProblem:     sub(donor.AggregatedProblem),
		SolutionProposal:      sub(donor.SolutionProposal),
		ProposingViewpoint:    sub(donor.ProposingViewpoint),
		OpposingViewpoint:     sub(donor.OpposingViewpoint),
		HistoricalPerspective: sub(donor.HistoricalPerspective),
		MotivationalProverb:   sub(donor.MotivationalProverb),
	}
}

// Suggestions returns a copy of the suggestion list in display order.
func (c *Catalog) Suggestions() []string {
	out := make([]string, len(suggestions))
	copy(out, suggestions)
	return out
}

// RandomTopics returns a copy of the random-topic pool.
func (c *Catalog) RandomTopics() []string {
	out := make([]string, len(randomTopics))
	copy(out, randomTopics)
	return out
}

// RandomTopic picks uniformly from the random-topic pool.
func (c *Catalog) RandomTopic() string {
	return randomTopics[c.intn(len(randomTopics))]
}

// Topics returns the topics that have a catalog record, in catalog order.
func (c *Catalog) Topics() []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Topic
	}
	return out
}

// RandomDelay suspends for a duration drawn uniformly from [min, max).
// Returns ctx.Err() if the context ends first.
func (c *Catalog) RandomDelay(ctx context.Context, min, max time.Duration) error {
	return c.sleep(ctx, c.delay(min, max))
}

func (c *Catalog) delay(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	span := int(max-min) / int(time.Millisecond)
	if span <= 0 {
		return min
	}
	return min + time.Duration(c.intn(span))*time.Millisecond
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
