package rpc

import (
	"errors"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Status converts a domain error into a gRPC status error.
func Status(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case domain.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, "You must login in this page")
	case errors.Is(err, domain.ErrForbidden):
		return status.Error(codes.PermissionDenied, "You are not authorized to enter this page")
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrNoSeats):
		return status.Error(codes.FailedPrecondition, "Not Available Tickets left!")
	case errors.Is(err, domain.ErrDuplicateUser):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		return status.Error(codes.Unavailable, "service temporarily unavailable")
	}
	log.WithError(err).Error("rpc failed")
	return status.Error(codes.Internal, "internal error")
}
