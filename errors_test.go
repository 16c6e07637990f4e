package threadex_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/threadex"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := threadex.Errorf(threadex.ENOTFOUND, "profile %q not found", "test")

	assert.Equal(t, threadex.ENOTFOUND, threadex.ErrorCode(err))
	assert.Equal(t, "profile \"test\" not found", threadex.ErrorMessage(err))
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("export: %w", threadex.Errorf(threadex.EEMPTY, "no content"))

	assert.Equal(t, threadex.EEMPTY, threadex.ErrorCode(err))
	assert.Equal(t, "no content", threadex.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, threadex.EINTERNAL, threadex.ErrorCode(assert.AnError))
	assert.Equal(t, "Internal error.", threadex.ErrorMessage(assert.AnError))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, threadex.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, threadex.ErrorMessage(nil))
}
