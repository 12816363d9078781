package grpc

import (
	"context"
	"time"

	"github.com/RigelNana/arktube/pkg/metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// UnaryServerInterceptor 为运维 gRPC 端口（健康检查等）记录 Prometheus 指标
func UnaryServerInterceptor(serviceName string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		metrics.RecordRequest(serviceName, info.FullMethod, status.Code(err).String(), time.Since(start))
		return resp, err
	}
}

// StreamServerInterceptor 覆盖 Health.Watch 等流式调用
func StreamServerInterceptor(serviceName string) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)
		metrics.RecordRequest(serviceName, info.FullMethod, status.Code(err).String(), time.Since(start))
		return err
	}
}
