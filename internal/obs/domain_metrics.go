package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// BreakdownTotal counts breakdown computations by the decision-rule branch
	// that produced the shipping figures (recomputed, stored, repaired, legacy).
	BreakdownTotal *prometheus.CounterVec
	// BreakdownCacheTotal counts cache lookups for finalized-order breakdowns.
	BreakdownCacheTotal *prometheus.CounterVec
	// QuoteItemsTotal observes how many line items arrive per quote request.
	QuoteItemsTotal prometheus.Histogram
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		BreakdownTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "breakdown_total",
			Help:      "Count of order breakdown computations by shipping source.",
		}, []string{"source"})
		BreakdownCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "breakdown_cache_total",
			Help:      "Count of breakdown cache lookups by result.",
		}, []string{"result"})
		QuoteItemsTotal = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_items",
			Help:      "Distribution of line item counts per quote request.",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
		})

		BreakdownTotal = registerCounterVec(reg, BreakdownTotal)
		BreakdownCacheTotal = registerCounterVec(reg, BreakdownCacheTotal)
		QuoteItemsTotal = registerDomainHistogram(reg, QuoteItemsTotal)
	})
}

func registerDomainHistogram(reg prometheus.Registerer, h prometheus.Histogram) prometheus.Histogram {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing
			}
		}
		panic(fmt.Errorf("register histogram: %w", err))
	}
	return h
}

// ObserveBreakdown records one breakdown computation. Safe to call before
// registration; it is then a no-op.
func ObserveBreakdown(source string) {
	if BreakdownTotal != nil {
		BreakdownTotal.WithLabelValues(source).Inc()
	}
}

// ObserveBreakdownCache records a cache hit or miss for order breakdowns.
func ObserveBreakdownCache(result string) {
	if BreakdownCacheTotal != nil {
		BreakdownCacheTotal.WithLabelValues(result).Inc()
	}
}
