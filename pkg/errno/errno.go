package errno

import (
	"errors"
	"fmt"
)

const (
	SuccessCode          = 0
	InvalidArgumentCode  = 10001
	UnauthenticatedCode  = 10002
	PermissionDeniedCode = 10003
	NotFoundCode         = 10004
	AlreadyExistsCode    = 10005
	ServiceErrCode       = 10006
)

// ErrNo is the error currency of the whole service. StatusCode is the HTTP
// status the handler layer answers with; ErrCode is the stable machine code
// for logs and tests.
type ErrNo struct {
	ErrCode    int64
	StatusCode int
	ErrMsg     string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, status_code=%d, err_msg=%s", e.ErrCode, e.StatusCode, e.ErrMsg)
}

func NewErrNo(code int64, status int, msg string) ErrNo {
	return ErrNo{ErrCode: code, StatusCode: status, ErrMsg: msg}
}

// WithMessage keeps the code and swaps the message.
func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

var (
	Success = NewErrNo(SuccessCode, 200, "Success")

	// InvalidArgumentErr: malformed identifier or missing required field.
	InvalidArgumentErr = NewErrNo(InvalidArgumentCode, 400, "Invalid argument")
	// UnauthenticatedErr: missing, invalid or expired credential.
	UnauthenticatedErr = NewErrNo(UnauthenticatedCode, 401, "Unauthenticated")
	// PermissionDeniedErr: non-owner mutation attempt. Always 403, never 400/401.
	PermissionDeniedErr = NewErrNo(PermissionDeniedCode, 403, "Permission denied")
	NotFoundErr         = NewErrNo(NotFoundCode, 404, "Resource not found")
	AlreadyExistsErr    = NewErrNo(AlreadyExistsCode, 409, "Resource already exists")
	// ServiceErr: downstream write/upload failure.
	ServiceErr = NewErrNo(ServiceErrCode, 500, "Service internal error")
)

// ConvertErr resolves any error to an ErrNo. Wrapped chains (pkg/errors and
// stdlib alike) are walked; anything that is not an ErrNo becomes ServiceErr
// carrying the original message.
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	var e ErrNo
	if errors.As(err, &e) {
		return e
	}
	return ServiceErr.WithMessage(err.Error())
}
