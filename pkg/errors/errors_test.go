// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, codes and path details

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/projsync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "missing_option",
			code:    errors.ErrMissingOption,
			message: "option name is required",
			wantStr: "[MISSING_REQUIRED_OPTION] option name is required",
		},
		{
			name:    "malformed_document",
			code:    errors.ErrMalformedDocument,
			message: "cannot parse .eslintrc",
			wantStr: "[MALFORMED_DOCUMENT] cannot parse .eslintrc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrTaskNotFound, "task %q not found", "eslint")
	assert.Equal(t, `[TASK_NOT_FOUND] task "eslint" not found`, err.Error())
}

func TestWrap(t *testing.T) {
	base := stderrors.New("permission denied")

	err := errors.Wrap(base, errors.ErrFileAccess, "cannot read package.json")
	require.NotNil(t, err)
	assert.Equal(t, "[FILE_ACCESS] cannot read package.json: permission denied", err.Error())
	assert.True(t, stderrors.Is(err, base))

	assert.Nil(t, errors.Wrap(nil, errors.ErrFileAccess, "nothing"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrFileAccess, "nothing %d", 1))
}

func TestIs(t *testing.T) {
	err := errors.New(errors.ErrInstallFailure, "npm exited 1")
	assert.True(t, stderrors.Is(err, errors.New(errors.ErrInstallFailure, "other")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrFileWrite, "other")))
}

func TestIsErrorCode(t *testing.T) {
	inner := errors.New(errors.ErrMalformedDocument, "bad json")
	outer := fmt.Errorf("step eslintrc: %w", inner)

	assert.True(t, errors.IsErrorCode(outer, errors.ErrMalformedDocument))
	assert.False(t, errors.IsErrorCode(outer, errors.ErrInstallFailure))
	assert.False(t, errors.IsErrorCode(stderrors.New("plain"), errors.ErrMalformedDocument))
	assert.False(t, errors.IsErrorCode(nil, errors.ErrMalformedDocument))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrMissingOption, errors.GetErrorCode(errors.New(errors.ErrMissingOption, "x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}

func TestGetPath(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		err := errors.New(errors.ErrMalformedDocument, "bad").WithPath("/p/.eslintrc")
		path, ok := errors.GetPath(err)
		require.True(t, ok)
		assert.Equal(t, "/p/.eslintrc", path)
	})

	t.Run("wrapped_without_path", func(t *testing.T) {
		inner := errors.New(errors.ErrMalformedDocument, "bad").WithPath("/p/tslint.json")
		outer := errors.Wrap(inner, errors.ErrStepExecute, "step failed")
		path, ok := errors.GetPath(outer)
		require.True(t, ok)
		assert.Equal(t, "/p/tslint.json", path)
	})

	t.Run("no_path", func(t *testing.T) {
		_, ok := errors.GetPath(errors.New(errors.ErrInternal, "x"))
		assert.False(t, ok)
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrInstallFailure, "failed").
		WithDetail("manager", "yarn").
		WithDetail("packages", 3)

	details := errors.GetErrorDetails(err)
	assert.Equal(t, "yarn", details["manager"])
	assert.Equal(t, 3, details["packages"])
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}
