package bookings_service_api

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "airlines.v1.BookingsService"

type BookingsServiceServer interface {
	CreateBooking(ctx context.Context, req *CreateBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, req *GetBookingRequest) (*BookingResponse, error)
	ListBookings(ctx context.Context, req *ListBookingsRequest) (*ListBookingsResponse, error)
	CancelBooking(ctx context.Context, req *CancelBookingRequest) (*CancelBookingResponse, error)
}

func RegisterBookingsServiceServer(s grpc.ServiceRegistrar, srv BookingsServiceServer) {
	s.RegisterService(&bookingsServiceDesc, srv)
}

var bookingsServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*BookingsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateBooking", Handler: unary("CreateBooking", BookingsServiceServer.CreateBooking)},
		{MethodName: "GetBooking", Handler: unary("GetBooking", BookingsServiceServer.GetBooking)},
		{MethodName: "ListBookings", Handler: unary("ListBookings", BookingsServiceServer.ListBookings)},
		{MethodName: "CancelBooking", Handler: unary("CancelBooking", BookingsServiceServer.CancelBooking)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "airlines/v1/bookings.proto",
}

// unary builds a method handler from a method expression on the server interface.
func unary[Req, Resp any](method string, call func(BookingsServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	fullMethod := "/" + serviceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		req := new(Req)
		if err := dec(req); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BookingsServiceServer), ctx, req)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BookingsServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, req, info, handler)
	}
}
