package grpcutil

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/maxpoletaev/kivigrid/memberset"
)

// ErrorDomain is reported in the ErrorInfo of member set errors.
const ErrorDomain = "memberset"

type errorClass struct {
	err    error
	code   codes.Code
	reason string
}

var errorClasses = []errorClass{
	{memberset.ErrNotFound, codes.NotFound, "NOT_FOUND"},
	{memberset.ErrCorrupted, codes.DataLoss, "CORRUPTED"},
	{memberset.ErrUnsupported, codes.Unimplemented, "UNSUPPORTED"},
	{memberset.ErrIllegalArgument, codes.InvalidArgument, "ILLEGAL_ARGUMENT"},
	{memberset.ErrIllegalState, codes.FailedPrecondition, "ILLEGAL_STATE"},
}

// Status converts a member set error into a gRPC status carrying an
// ErrorInfo detail. Errors outside the member set taxonomy map to
// codes.Unknown, nil maps to an OK status.
func Status(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}

	if st, ok := status.FromError(err); ok {
		return st
	}

	for _, class := range errorClasses {
		if !errors.Is(err, class.err) {
			continue
		}

		st := status.New(class.code, err.Error())

		withInfo, detailErr := st.WithDetails(&errdetails.ErrorInfo{
			Domain: ErrorDomain,
			Reason: class.reason,
		})
		if detailErr != nil {
			return st
		}

		return withInfo
	}

	return status.New(codes.Unknown, err.Error())
}

// ErrorCode extracts a gRPC error code from an error. Member set errors are
// classified first; other non-gRPC errors yield codes.Unknown.
func ErrorCode(err error) codes.Code {
	return Status(err).Code()
}

// FromStatus restores the member set error class from a gRPC error
// produced by Status. The original message is kept. Errors from other
// domains are returned as is.
func FromStatus(err error) error {
	info := ErrorInfo(err)
	if info == nil || info.Domain != ErrorDomain {
		return err
	}

	for _, class := range errorClasses {
		if class.reason == info.Reason {
			return &remoteError{class: class.err, msg: status.Convert(err).Message()}
		}
	}

	return err
}

// ErrorInfo extracts an error info from an error. If the error is not a gRPC
// error or does not contain an error info, it returns nil.
func ErrorInfo(err error) *errdetails.ErrorInfo {
	st := status.Convert(err)

	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok {
			return info
		}
	}

	return nil
}

type remoteError struct {
	class error
	msg   string
}

func (e *remoteError) Error() string { return e.msg }

func (e *remoteError) Unwrap() error { return e.class }
