// Package grpc exposes the growth schedule generator over gRPC.
package grpc

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/wealthflow-growth/internal/domain"
	"github.com/simaogato/wealthflow-growth/internal/usecase/growth"
)

// MaxMessageSize bounds GrowthService messages in both directions
// A 100000-year schedule encodes to roughly 20MB, above gRPC's 4MB receive default
const MaxMessageSize = 64 << 20

// ScheduleGenerator produces the doubling schedule for a principal and a rate
type ScheduleGenerator interface {
	GenerateSchedule(principal, annualRatePercent decimal.Decimal) (domain.Schedule, error)
}

// GeneratorFunc adapts a plain function such as growth.GenerateSchedule to ScheduleGenerator
type GeneratorFunc func(principal, annualRatePercent decimal.Decimal) (domain.Schedule, error)

// GenerateSchedule calls f
func (f GeneratorFunc) GenerateSchedule(principal, annualRatePercent decimal.Decimal) (domain.Schedule, error) {
	return f(principal, annualRatePercent)
}

// Server implements the GrowthService gRPC server
// Rates whose schedule would run past MaxYears are refused; zero means no limit
type Server struct {
	Generator ScheduleGenerator
	MaxYears  int
}

// NewServer creates a new gRPC server instance
func NewServer(generator ScheduleGenerator, maxYears int) *Server {
	return &Server{Generator: generator, MaxYears: maxYears}
}

// NewGRPCServer creates a gRPC server serving GrowthService with the request id,
// logging and auth interceptors chained in that order
func NewGRPCServer(generator ScheduleGenerator, logger *zap.Logger, apiToken string, maxYears int, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.MaxSendMsgSize(MaxMessageSize), grpc.ChainUnaryInterceptor(
		RequestIDInterceptor(),
		LoggingInterceptor(logger),
		AuthInterceptor(apiToken),
	))

	grpcServer := grpc.NewServer(opts...)
	RegisterGrowthServiceServer(grpcServer, NewServer(generator, maxYears))
	return grpcServer
}

// GenerateSchedule handles the GenerateSchedule RPC
func (s *Server) GenerateSchedule(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	// Parse principal and rate; range checks are left to the generator
	params, err := decodeRequest(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	if err := s.checkYears(params.AnnualRatePercent); err != nil {
		return nil, err
	}

	// The caller may have given up while the request waited
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	schedule, err := s.Generator.GenerateSchedule(params.Principal, params.AnnualRatePercent)
	if err != nil {
		return nil, mapError(err)
	}

	return encodeSchedule(RequestIDFromContext(ctx), schedule), nil
}

// checkYears refuses rates so low that the schedule would exceed MaxYears
// Non-positive rates pass through so the generator reports them
func (s *Server) checkYears(annualRatePercent decimal.Decimal) error {
	if s.MaxYears <= 0 {
		return nil
	}
	years, err := growth.TheoreticalYears(annualRatePercent)
	if err == nil && years > s.MaxYears {
		return status.Errorf(codes.InvalidArgument,
			"annual rate %s%% takes %d years to double, more than the %d this server computes",
			annualRatePercent, years, s.MaxYears)
	}
	return nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrInvalidArgument) {
		return status.Errorf(codes.InvalidArgument, "%s", err)
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", err)
}
