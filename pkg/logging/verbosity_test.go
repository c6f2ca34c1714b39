package logging_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/labelkit/labelkit/pkg/logging"
)

func TestSuppressRestoresPriorLevel(t *testing.T) {
	prior := logging.Verbosity()
	t.Cleanup(func() { logging.SetVerbosity(prior) })

	logging.SetVerbosity(zerolog.DebugLevel)
	restore := logging.Suppress()
	assert.Equal(t, zerolog.ErrorLevel, logging.Verbosity())

	restore()
	assert.Equal(t, zerolog.DebugLevel, logging.Verbosity())
}

func TestRestoreIsIdempotent(t *testing.T) {
	prior := logging.Verbosity()
	t.Cleanup(func() { logging.SetVerbosity(prior) })

	logging.SetVerbosity(zerolog.InfoLevel)
	restore := logging.Suppress()
	restore()

	// a later verbosity change is not clobbered by a second restore call
	logging.SetVerbosity(zerolog.WarnLevel)
	restore()
	assert.Equal(t, zerolog.WarnLevel, logging.Verbosity())
}

func TestScopedNesting(t *testing.T) {
	prior := logging.Verbosity()
	t.Cleanup(func() { logging.SetVerbosity(prior) })

	logging.SetVerbosity(zerolog.InfoLevel)
	outer := logging.Scoped(zerolog.WarnLevel)
	inner := logging.Scoped(zerolog.ErrorLevel)

	inner()
	assert.Equal(t, zerolog.WarnLevel, logging.Verbosity())
	outer()
	assert.Equal(t, zerolog.InfoLevel, logging.Verbosity())
}

func TestSuppressedEventsAreDropped(t *testing.T) {
	tl := logging.NewTestLogger(t)

	restore := logging.Suppress()
	tl.Logger.Info().Msg("hidden")
	restore()
	tl.Logger.Info().Msg("visible")

	assert.False(t, tl.Contains("hidden"))
	assert.True(t, tl.Contains("visible"))
}
