package cmd

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	assert.Equal(t, logrus.DebugLevel, newLogger(true).GetLevel())
	assert.Equal(t, logrus.InfoLevel, newLogger(false).GetLevel())

	formatter, ok := newLogger(false).Formatter.(*logrus.TextFormatter)
	require.True(t, ok)
	assert.True(t, formatter.FullTimestamp)
}
