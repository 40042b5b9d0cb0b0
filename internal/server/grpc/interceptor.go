package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// loggingInterceptor logs every unary call with its status code and latency.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	code := status.Code(err)
	s.logger.Debug(ctx, "gRPC call",
		"method", info.FullMethod,
		"code", code.String(),
		"duration", time.Since(start),
	)
	if err != nil {
		s.logger.Warn(ctx, "gRPC call failed", "method", info.FullMethod, "error", err)
	}

	return resp, err
}
