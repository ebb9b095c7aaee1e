package rpc

import (
	"context"
	"strings"
	"time"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type TokenParser interface {
	Parse(raw string) (string, error)
}

type CallerResolver interface {
	Resolve(ctx context.Context, username string) (domain.Caller, error)
}

type callerKey struct{}

func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFrom returns the anonymous caller when none was attached.
func CallerFrom(ctx context.Context) domain.Caller {
	caller, _ := ctx.Value(callerKey{}).(domain.Caller)
	return caller
}

// AuthInterceptor resolves the caller from the bearer token in the
// "authorization" metadata. A missing or invalid token leaves the call anonymous.
func AuthInterceptor(tokens TokenParser, resolver CallerResolver) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		username := ""
		if raw, ok := bearerFromMetadata(ctx); ok {
			name, err := tokens.Parse(raw)
			if err != nil {
				log.WithError(err).WithField("method", info.FullMethod).Debug("bearer token rejected")
			} else {
				username = name
			}
		}

		caller, err := resolver.Resolve(ctx, username)
		if err != nil {
			return nil, Status(err)
		}
		return handler(WithCaller(ctx, caller), req)
	}
}

func LoggingInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.WithFields(log.Fields{
			"method":   info.FullMethod,
			"code":     status.Code(err).String(),
			"duration": time.Since(start).String(),
		}).Info("rpc")
		return resp, err
	}
}

func bearerFromMetadata(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	for _, value := range md.Get("authorization") {
		const prefix = "bearer "
		if len(value) > len(prefix) && strings.EqualFold(value[:len(prefix)], prefix) {
			return strings.TrimSpace(value[len(prefix):]), true
		}
	}
	return "", false
}
