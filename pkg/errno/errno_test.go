package errno

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestConvertErrNil(t *testing.T) {
	assert.Equal(t, Success, ConvertErr(nil))
}

func TestConvertErrPlain(t *testing.T) {
	e := ConvertErr(errors.New("boom"))
	assert.Equal(t, int64(ServiceErrCode), e.ErrCode)
	assert.Equal(t, 500, e.StatusCode)
	assert.Equal(t, "boom", e.ErrMsg)
}

func TestConvertErrWrappedChain(t *testing.T) {
	err := errors.Wrap(NotFoundErr.WithMessage("video does not exist"), "get video")
	e := ConvertErr(err)
	assert.Equal(t, int64(NotFoundCode), e.ErrCode)
	assert.Equal(t, 404, e.StatusCode)
	assert.Equal(t, "video does not exist", e.ErrMsg)
}

func TestWithMessageKeepsCode(t *testing.T) {
	e := PermissionDeniedErr.WithMessage("you do not own this video")
	assert.Equal(t, int64(PermissionDeniedCode), e.ErrCode)
	assert.Equal(t, 403, e.StatusCode)
	assert.Equal(t, "you do not own this video", e.ErrMsg)
	// the original is untouched
	assert.Equal(t, "Permission denied", PermissionDeniedErr.ErrMsg)
}
