package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/simaogato/wealthflow-growth/internal/adapter/grpc"
	"github.com/simaogato/wealthflow-growth/internal/usecase/growth"
)

func (a *app) newServeCmd() *cobra.Command {
	var addr, token string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve GrowthService over gRPC",
		Long: `Starts a gRPC server exposing wealthflow.growth.v1.GrowthService/GenerateSchedule.
Callers must send the API token in the "authorization" metadata.
The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.GRPCAddr
			}
			if token == "" {
				token = a.cfg.APIToken
			}
			return a.serve(addr, token)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default $DOUBLING_GRPC_ADDR)")
	cmd.Flags().StringVar(&token, "token", "", "API token callers must present (default $DOUBLING_API_TOKEN)")
	return cmd
}

func (a *app) serve(addr, token string) error {
	grpcServer := grpcadapter.NewGRPCServer(grpcadapter.GeneratorFunc(growth.GenerateSchedule), a.logger, token, a.cfg.MaxYears)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
		serveErr <- grpcServer.Serve(lis)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	return waitForShutdown(grpcServer, sigChan, serveErr, a.logger)
}

// waitForShutdown waits for a signal and gracefully shuts down the server
// It returns early with the error if the server stops serving on its own
func waitForShutdown(grpcServer *grpclib.Server, sigChan <-chan os.Signal, serveErr <-chan error, logger *zap.Logger) error {
	select {
	case err := <-serveErr:
		return fmt.Errorf("gRPC server stopped: %w", err)
	case sig := <-sigChan:
		logger.Info("shutting down gracefully", zap.String("signal", sig.String()))
	}

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")
	return nil
}
