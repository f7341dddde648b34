// Package driver provides ExpansionDriver, the verb-keyed cache of
// mars/language.Language instances that embedding hosts use as the single
// entry point for expanding and flattening MARS requests.
package driver

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/mmp/marskit/mars"
	"github.com/mmp/marskit/mars/language"
	"github.com/mmp/marskit/mars/types"
)

// ExpansionDriver holds one Language per known verb and applies it to
// incoming Requests. It is safe for concurrent use.
type ExpansionDriver struct {
	mu        sync.RWMutex
	languages map[string]*language.Language
	verbEnum  *types.Enum

	limiter *rate.Limiter
	metrics *metrics
}

type metrics struct {
	expandTotal   prometheus.Counter
	expandSeconds prometheus.Histogram
	encodeTotal   prometheus.Counter
}

// Option configures an ExpansionDriver.
type Option func(*ExpansionDriver)

// WithRateLimit bounds the rate of Expand/Flatten calls, for drivers
// embedded in a shared service process. nil disables limiting (default).
func WithRateLimit(limiter *rate.Limiter) Option {
	return func(d *ExpansionDriver) { d.limiter = limiter }
}

// WithMetrics registers Prometheus counters/histograms for this driver's
// operations against reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(d *ExpansionDriver) {
		m := &metrics{
			expandTotal: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "marskit_expand_total", Help: "Total number of request expansions performed.",
			}),
			expandSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
				Name: "marskit_expand_duration_seconds", Help: "Duration of request expansions.",
			}),
			encodeTotal: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "marskit_encode_total", Help: "Total number of GRIB2 encode operations performed.",
			}),
		}
		reg.MustRegister(m.expandTotal, m.expandSeconds, m.encodeTotal)
		d.metrics = m
	}
}

// New constructs an empty ExpansionDriver; register verbs with Register.
func New(opts ...Option) *ExpansionDriver {
	d := &ExpansionDriver{languages: make(map[string]*language.Language)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register adds lang to the driver, keyed by its verb (case-insensitive).
func (d *ExpansionDriver) Register(lang *language.Language) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.languages[strings.ToLower(lang.Verb)] = lang
}

func (d *ExpansionDriver) languageFor(verb string) (*language.Language, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	l, ok := d.languages[strings.ToLower(verb)]
	if !ok {
		return nil, fmt.Errorf("unknown verb %q", verb)
	}
	return l, nil
}

func (d *ExpansionDriver) wait(ctx context.Context) error {
	if d.limiter == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return d.limiter.Wait(ctx)
}

// Expand expands every request in reqs against its verb's Language,
// applying keyword defaults (inherit=true) and returning the expanded
// (but not flattened) results in order.
func (d *ExpansionDriver) Expand(ctx context.Context, reqs []*mars.Request, strict bool) ([]*mars.Request, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	out := make([]*mars.Request, 0, len(reqs))
	for _, r := range reqs {
		lang, err := d.languageFor(r.Verb())
		if err != nil {
			return nil, err
		}
		expanded, err := lang.Expand(r, true, strict)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded)
	}
	if d.metrics != nil {
		d.metrics.expandTotal.Add(float64(len(reqs)))
	}
	return out, nil
}

// ExpandOne expands req and calls callback once per expanded Request
// (there is exactly one, since Expand does not flatten); kept for API
// symmetry with Flatten.
func (d *ExpansionDriver) ExpandOne(ctx context.Context, req *mars.Request, strict bool, callback func(*mars.Request) error) error {
	expanded, err := d.Expand(ctx, []*mars.Request{req}, strict)
	if err != nil {
		return err
	}
	return callback(expanded[0])
}

// Flatten expands req and then calls callback once per single-valued
// Request in the Cartesian product of its flattening keywords.
func (d *ExpansionDriver) Flatten(ctx context.Context, req *mars.Request, strict bool, callback func(*mars.Request) error) error {
	if err := d.wait(ctx); err != nil {
		return err
	}
	lang, err := d.languageFor(req.Verb())
	if err != nil {
		return err
	}
	expanded, err := lang.Expand(req, true, strict)
	if err != nil {
		return err
	}
	return lang.Flatten(expanded, callback)
}

// Reset clears every registered Language's lazily-built lookup state
// (enum alias tables, external value files), forcing a reload on next use.
func (d *ExpansionDriver) Reset() {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, l := range d.languages {
		l.Reset()
	}
}
