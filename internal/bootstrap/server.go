package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/digitalairlines/config"
	bookingsapi "github.com/Domenick1991/digitalairlines/internal/api/bookings_service_api"
	flightsapi "github.com/Domenick1991/digitalairlines/internal/api/flights_service_api"
	"github.com/Domenick1991/digitalairlines/internal/api/rpc"
	"github.com/Domenick1991/digitalairlines/internal/service/booking"
	"github.com/Domenick1991/digitalairlines/internal/service/flights"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

// Services are the use cases and identity plumbing exposed over gRPC.
type Services struct {
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Tokens   rpc.TokenParser
	Resolver rpc.CallerResolver
}

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
}

// Run starts the gRPC server and the HTTP router and blocks until ctx is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, router http.Handler, svc Services) error {
	s := newServers(cfg, router, svc)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}

	errCh := make(chan error, 2)
	go func() {
		log.WithField("address", cfg.GRPC.Address).Info("gRPC server started")
		errCh <- s.grpcServer.Serve(lis)
	}()
	go func() {
		log.WithField("address", cfg.HTTP.Address).Info("HTTP server started")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.grpcServer.Stop()
		_ = s.httpServer.Close()
		return err
	case <-ctx.Done():
		log.Info("shutting down servers")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServers(cfg *config.Config, router http.Handler, svc Services) *Servers {
	grpcSrv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		rpc.LoggingInterceptor(),
		rpc.AuthInterceptor(svc.Tokens, svc.Resolver),
	))
	flightsapi.RegisterFlightsServiceServer(grpcSrv, flightsapi.NewServer(svc.Flights))
	bookingsapi.RegisterBookingsServiceServer(grpcSrv, bookingsapi.NewServer(svc.Bookings))

	return &Servers{
		grpcServer: grpcSrv,
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}
