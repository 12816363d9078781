package metrics

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServiceName 指标中的 service 标签
const ServiceName = "arktube"

var (
	// HTTP/gRPC 请求指标
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requests_total",
			Help: "Total number of requests",
		},
		[]string{"service", "method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method"},
	)

	// 数据库连接池指标
	DatabaseConnections = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "database_connections",
			Help: "Current database connections",
		},
		[]string{"service", "status"},
	)

	// 消息队列指标
	KafkaMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_total",
			Help: "Total number of Kafka messages",
		},
		[]string{"service", "topic", "status"},
	)

	// 业务指标
	WebhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Video processor webhook events by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	WorkflowJobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_jobs_total",
			Help: "Workflow jobs by kind and status",
		},
		[]string{"kind", "status"},
	)

	VideoUploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_uploads_total",
			Help: "Direct uploads requested from the video processor",
		},
		[]string{"status"},
	)
)

func init() {
	// 注册所有指标
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		DatabaseConnections,
		KafkaMessagesTotal,
		WebhookEventsTotal,
		WorkflowJobsTotal,
		VideoUploadsTotal,
	)
}

// StartMetricsServer 启动独立的 metrics HTTP 服务器
func StartMetricsServer(port string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: ":" + port, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("failed to start metrics server: " + err.Error())
		}
	}()
	return srv
}

// RecordRequest 记录请求指标的助手函数
func RecordRequest(service, method, status string, duration time.Duration) {
	RequestsTotal.WithLabelValues(service, method, status).Inc()
	RequestDuration.WithLabelValues(service, method).Observe(duration.Seconds())
}

// RecordDBStats 刷新连接池指标
func RecordDBStats(stats sql.DBStats) {
	DatabaseConnections.WithLabelValues(ServiceName, "open").Set(float64(stats.OpenConnections))
	DatabaseConnections.WithLabelValues(ServiceName, "in_use").Set(float64(stats.InUse))
	DatabaseConnections.WithLabelValues(ServiceName, "idle").Set(float64(stats.Idle))
}
