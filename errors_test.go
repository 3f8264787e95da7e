package threadkit_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/threadkit"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := threadkit.Errorf(threadkit.EINVALID, "comment limit %d must not be negative", -1)

	assert.Equal(t, threadkit.EINVALID, threadkit.ErrorCode(err))
	assert.Equal(t, "comment limit -1 must not be negative", threadkit.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, threadkit.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, threadkit.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("extracting: %w", threadkit.Errorf(threadkit.ENOTFOUND, "no platform"))

	assert.Equal(t, threadkit.ENOTFOUND, threadkit.ErrorCode(err))
	assert.Equal(t, "no platform", threadkit.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, threadkit.EINTERNAL, threadkit.ErrorCode(err))
	assert.Equal(t, "Internal error", threadkit.ErrorMessage(err))
}
