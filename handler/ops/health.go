package ops

import (
	"context"
	"database/sql"
	"time"

	"github.com/RigelNana/arktube/pkg/metrics"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// DBProbe *sql.DB 满足此接口
type DBProbe interface {
	PingContext(ctx context.Context) error
	Stats() sql.DBStats
}

// HealthMonitor 定期探测数据库，同步 gRPC 健康状态与连接池指标
type HealthMonitor struct {
	db       DBProbe
	server   *health.Server
	interval time.Duration
	logger   *logrus.Logger
}

func NewHealthMonitor(db DBProbe, interval time.Duration, logger *logrus.Logger) *HealthMonitor {
	return &HealthMonitor{
		db:       db,
		server:   health.NewServer(),
		interval: interval,
		logger:   logger,
	}
}

// Server 注册到运维 gRPC 端口
func (m *HealthMonitor) Server() *health.Server {
	return m.server
}

func (m *HealthMonitor) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	err := m.db.PingContext(ctx)
	metrics.RecordDBStats(m.db.Stats())

	status := healthpb.HealthCheckResponse_SERVING
	if err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	m.server.SetServingStatus("", status)
	m.server.SetServingStatus(metrics.ServiceName, status)
	return err
}

// Run 阻塞直到 ctx 结束，结束时标记为 NOT_SERVING
func (m *HealthMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		if err := m.Check(ctx); err != nil && ctx.Err() == nil {
			m.logger.WithError(err).Warn("database health check failed")
		}
		select {
		case <-ctx.Done():
			m.server.Shutdown()
			return
		case <-ticker.C:
		}
	}
}
