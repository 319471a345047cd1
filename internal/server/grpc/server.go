// Package grpc exposes the ledger node over the poe.ledger.v1.Ledger gRPC
// service.
package grpc

import (
	"context"
	"net"
	"sync"

	"github.com/dmitrijs2005/proofkeeper/internal/logging"
	"github.com/dmitrijs2005/proofkeeper/internal/rpc"
	"github.com/dmitrijs2005/proofkeeper/internal/server/models"
	"github.com/dmitrijs2005/proofkeeper/internal/server/services"
	"google.golang.org/grpc"
)

type ledgerSvc interface {
	Query(ctx context.Context, digest string) (*models.Proof, error)
	Nonce(ctx context.Context, address string) (uint64, error)
	Submit(ctx context.Context, token string) (*services.Receipt, error)
}

type evidenceSvc interface {
	UploadURL(ctx context.Context, token string) (string, error)
	DownloadURL(ctx context.Context, digest string) (string, error)
}

type subscriber interface {
	Subscribe(digest string) (<-chan models.Proof, func())
}

type GRPCServer struct {
	rpc.UnimplementedLedgerServer
	address  string
	ledger   ledgerSvc
	evidence evidenceSvc
	hub      subscriber
	logger   logging.Logger

	// stopping is closed when Run begins shutting down so open proof streams
	// return and GracefulStop can finish.
	stopping chan struct{}
	stopOnce sync.Once
}

func NewGRPCServer(a string, l logging.Logger, ledger ledgerSvc, evidence evidenceSvc, hub subscriber) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		ledger:   ledger,
		evidence: evidence,
		hub:      hub,
		stopping: make(chan struct{}),
	}
}

// newServer builds the gRPC server with interceptors and the service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.requestIDInterceptor, s.loggingInterceptor),
		grpc.ChainStreamInterceptor(s.streamLoggingInterceptor),
	)
	rpc.RegisterLedgerServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully. Open proof
// streams are ended with Unavailable first.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.stopOnce.Do(func() { close(s.stopping) })
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	return srv.Serve(listen)
}
