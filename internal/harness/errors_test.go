package harness

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFatal(t *testing.T) {
	t.Parallel()

	base := errors.New("GITHUB_TOKEN is required")

	err := Fatal(base)
	assert.True(t, IsFatal(err))
	assert.Equal(t, base.Error(), err.Error())
	assert.ErrorIs(t, err, base)

	// Wrapping preserves the fatal marker.
	wrapped := fmt.Errorf("running step: %w", err)
	assert.True(t, IsFatal(wrapped))
}

func TestFatal_Nil(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Fatal(nil))
}

func TestIsFatal_PlainError(t *testing.T) {
	t.Parallel()

	assert.False(t, IsFatal(errors.New("422 reference already exists")))
}
