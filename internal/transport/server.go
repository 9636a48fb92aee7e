package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const shutdownTimeout = 5 * time.Second

// Server runs the gRPC health service and the REST gateway in front of it.
type Server struct {
	logger   *zap.Logger
	restAddr string
	grpcAddr string
	handler  *RESTHandler
}

func NewServer(restAddr, grpcAddr string, handler *RESTHandler, logger *zap.Logger) (*Server, error) {
	if restAddr == "" || grpcAddr == "" {
		return nil, errors.New("rest and grpc listen addresses are required")
	}
	if handler == nil {
		return nil, errors.New("rest handler is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	grpcPrometheus.EnableHandlingTimeHistogram()

	return &Server{logger: logger, restAddr: restAddr, grpcAddr: grpcAddr, handler: handler}, nil
}

// Run serves until ctx is done or a listener fails.
func (s *Server) Run(ctx context.Context) error {
	grpcServer, healthServer := newGRPCServer(s.logger)

	socket, err := net.Listen("tcp", s.grpcAddr)
	if err != nil {
		return fmt.Errorf("listen grpc %s: %w", s.grpcAddr, err)
	}

	conn, err := grpc.NewClient(socket.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		_ = socket.Close()
		return fmt.Errorf("dial grpc %s: %w", socket.Addr(), err)
	}
	defer func() {
		_ = conn.Close()
	}()

	httpServer, err := s.newHTTPServer(healthpb.NewHealthClient(conn))
	if err != nil {
		_ = socket.Close()
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("starting grpc server", zap.String("addr", socket.Addr().String()))
		if err := grpcServer.Serve(socket); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve grpc: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		s.logger.Info("starting http server", zap.String("addr", s.restAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down api servers")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("failed to shutdown http server", zap.Error(err))
		}
		_ = conn.Close()
		grpcServer.GracefulStop()
		return nil
	})

	return g.Wait()
}

func (s *Server) newHTTPServer(healthClient healthpb.HealthClient) (*http.Server, error) {
	gw := gwruntime.NewServeMux(gwruntime.WithHealthzEndpoint(healthClient))
	if err := s.handler.Register(gw); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/", gw)
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              s.restAddr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}, nil
}
