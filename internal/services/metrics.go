package services

import "github.com/prometheus/client_golang/prometheus"

var (
	trendCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dashboard_trend_cache_hits_total",
			Help: "Trend widget reads served from the view cache",
		},
	)
	trendCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dashboard_trend_cache_misses_total",
			Help: "Trend widget reads that required a store round trip",
		},
	)
)

func init() {
	prometheus.MustRegister(trendCacheHits, trendCacheMisses)
}
