package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName is the fully qualified name of the growth service
	ServiceName = "wealthflow.growth.v1.GrowthService"

	// GenerateScheduleMethod is the full RPC path of GenerateSchedule
	GenerateScheduleMethod = "/" + ServiceName + "/GenerateSchedule"
)

// GrowthServiceServer is the server API for GrowthService
// Messages are google.protobuf.Struct so the service needs no generated code:
//
//	request:  {principal, annual_rate_percent}             decimal strings or numbers
//	response: {request_id, years_to_double, records: [{year, beginning_balance,
//	          interest_earned, ending_balance}]}           balances as decimal strings
type GrowthServiceServer interface {
	GenerateSchedule(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// GrowthServiceDesc describes GrowthService for grpc.Server.RegisterService
var GrowthServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GrowthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GenerateSchedule",
			Handler:    generateScheduleHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "wealthflow/growth/v1/growth.proto",
}

// RegisterGrowthServiceServer registers srv on the gRPC service registrar
func RegisterGrowthServiceServer(s grpc.ServiceRegistrar, srv GrowthServiceServer) {
	s.RegisterService(&GrowthServiceDesc, srv)
}

func generateScheduleHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GrowthServiceServer).GenerateSchedule(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GenerateScheduleMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GrowthServiceServer).GenerateSchedule(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
