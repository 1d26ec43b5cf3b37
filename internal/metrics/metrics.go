// Package metrics holds the prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Registry 持有独立的 prometheus 注册表，避免测试之间共享全局默认注册表。
type Registry struct {
	reg          *prometheus.Registry
	storeOps     *prometheus.CounterVec
	storeLatency *prometheus.HistogramVec
	searches     *prometheus.CounterVec
}

// New 创建注册表并注册全部指标。
func New() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		reg: reg,
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Remote store calls by table, operation and outcome.",
		}, []string{"table", "op", "outcome"}),
		storeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Remote store call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"table", "op"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "queries_total",
			Help:      "Product search requests by result state.",
		}, []string{"state"}),
	}
	reg.MustRegister(r.storeOps, r.storeLatency, r.searches)
	return r
}

// ObserveStoreOp 记录一次存储调用。
func (r *Registry) ObserveStoreOp(table, op, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.storeOps.WithLabelValues(table, op, outcome).Inc()
	r.storeLatency.WithLabelValues(table, op).Observe(elapsed.Seconds())
}

// ObserveSearch 记录一次搜索，state 取值 results / empty / cleared。
func (r *Registry) ObserveSearch(state string) {
	if r == nil {
		return
	}
	r.searches.WithLabelValues(state).Inc()
}

// Gatherer 暴露底层注册表，供测试读取。
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Handler 返回 /metrics 使用的 HTTP handler。
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
