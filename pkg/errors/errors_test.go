// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/projclone/pkg/errors"
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
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "project not found",
			wantStr: "[NOT_FOUND] project not found",
		},
		{
			name:    "same_path_error",
			code:    errors.ErrSamePath,
			message: "source and destination are the same",
			wantStr: "[SAME_PATH] source and destination are the same",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details, "details should be initialized")
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrLinkCreate, "cannot link %s to %s", "/a", "/b")
	assert.Equal(t, "cannot link /a to /b", err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrMarkerWrite, "write failed")
		require.Error(t, err)

		var projectErr *errors.ProjectError
		require.True(t, stderrors.As(err, &projectErr))
		assert.Equal(t, errors.ErrMarkerWrite, projectErr.Code)
		assert.Same(t, baseErr, projectErr.Wrapped)
		assert.Equal(t, "[MARKER_WRITE] write failed: base error", err.Error())
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.NoError(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.NoError(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrNotFound, "not found").
		WithDetail("path", "/work/Proj").
		WithDetail("kind", "marker")

	assert.Equal(t, "/work/Proj", err.Details["path"])
	assert.Equal(t, "marker", err.Details["kind"])
	assert.Equal(t, "/work/Proj", errors.GetErrorDetails(err)["path"])
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrNotFound, "error 1")
	err2 := errors.New(errors.ErrNotFound, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	assert.True(t, err1.Is(err2), "same code should match")
	assert.False(t, err1.Is(err3), "different codes should not match")
	assert.True(t, stderrors.Is(err1, err2), "errors.Is should work with ProjectError")
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrProjectOpen, "open"),
			code:     errors.ErrProjectOpen,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrNotFound, "not found"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrDelete, "denied"),
			code:     errors.ErrDelete,
			expected: true,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrNotFound,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrNotFound,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrMarkerParse, errors.GetErrorCode(errors.New(errors.ErrMarkerParse, "bad marker")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("standard error")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	readErr := errors.Wrap(rootCause, errors.ErrMarkerRead, "cannot read marker")
	loadErr := errors.Wrap(readErr, errors.ErrConfigLoad, "failed to load")

	assert.True(t, errors.IsErrorCode(loadErr, errors.ErrConfigLoad))
	assert.True(t, errors.IsErrorCode(stderrors.Unwrap(loadErr), errors.ErrMarkerRead))
	assert.True(t, stderrors.Is(loadErr, rootCause))
}
