package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sports_program"

var (
	// Registry 应用自有的 Prometheus 采集器注册表
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms ~ 5s
		},
		[]string{"method", "route"},
	)

	applicationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "applications",
			Name:      "created_total",
			Help:      "Total number of applications submitted.",
		},
		[]string{"type"},
	)

	applicationDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "applications",
			Name:      "decisions_total",
			Help:      "Total number of application status decisions.",
		},
		[]string{"type", "status"},
	)

	applicationsAutoRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "applications",
			Name:      "auto_rejected_total",
			Help:      "Pending trainer applications rejected because another trainer was approved.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		applicationsCreated,
		applicationDecisions,
		applicationsAutoRejected,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler 暴露 /metrics
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ── HTTP ──

// InFlightInc 请求开始
func InFlightInc() { httpInFlight.Inc() }

// InFlightDec 请求结束
func InFlightDec() { httpInFlight.Dec() }

// ObserveHTTP 记录一次请求，route 使用路由模板避免标签基数膨胀
func ObserveHTTP(method, route, status string, seconds float64) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

// ── 报名申请 ──

// ApplicationCreated 新申请提交
func ApplicationCreated(appType string) {
	applicationsCreated.WithLabelValues(appType).Inc()
}

// ApplicationDecided 申请被审批为 approved / rejected
func ApplicationDecided(appType, status string) {
	applicationDecisions.WithLabelValues(appType, status).Inc()
}

// ApplicationsAutoRejected 教练分配后自动拒绝的其他待审申请数
func ApplicationsAutoRejected(n int64) {
	if n > 0 {
		applicationsAutoRejected.Add(float64(n))
	}
}
