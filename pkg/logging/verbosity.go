package logging

import "github.com/rs/zerolog"

// Verbosity returns the current process-wide verbosity level.
// It is the zerolog global level: every logger created through this
// package respects it.
func Verbosity() zerolog.Level {
	return zerolog.GlobalLevel()
}

// SetVerbosity sets the process-wide verbosity level.
func SetVerbosity(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// Suppress raises the process-wide verbosity to error level and returns a
// restore function. The restore function must run on every exit path,
// including panics:
//
//	restore := logging.Suppress()
//	defer restore()
//
// Restore is safe to call more than once; only the first call has effect.
func Suppress() func() {
	return Scoped(zerolog.ErrorLevel)
}

// Scoped sets the process-wide verbosity to the given level and returns a
// function that restores the prior level. See Suppress.
func Scoped(level zerolog.Level) func() {
	prior := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(level)
	restored := false
	return func() {
		if restored {
			return
		}
		restored = true
		zerolog.SetGlobalLevel(prior)
	}
}
