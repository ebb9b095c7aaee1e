package flights_service_api

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "airlines.v1.FlightsService"

type FlightsServiceServer interface {
	SearchFlights(ctx context.Context, req *SearchFlightsRequest) (*SearchFlightsResponse, error)
	GetFlight(ctx context.Context, req *GetFlightRequest) (*GetFlightResponse, error)
}

func RegisterFlightsServiceServer(s grpc.ServiceRegistrar, srv FlightsServiceServer) {
	s.RegisterService(&flightsServiceDesc, srv)
}

var flightsServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*FlightsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SearchFlights", Handler: searchFlightsHandler},
		{MethodName: "GetFlight", Handler: getFlightHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "airlines/v1/flights.proto",
}

func searchFlightsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(SearchFlightsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FlightsServiceServer).SearchFlights(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/SearchFlights"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FlightsServiceServer).SearchFlights(ctx, req.(*SearchFlightsRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func getFlightHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(GetFlightRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FlightsServiceServer).GetFlight(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/GetFlight"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FlightsServiceServer).GetFlight(ctx, req.(*GetFlightRequest))
	}
	return interceptor(ctx, req, info, handler)
}
