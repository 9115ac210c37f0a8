package app

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// ErrInternal is returned in place of a recovered panic.
var ErrInternal = errors.New("internal error, please retry")

// LoggingMiddleware logs every invoked command.
func LoggingMiddleware() func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		log.Debug().
			Str("command", cmd.CommandPath()).
			Strs("args", args).
			Msg("Received command")
	}
}

// RecoveryMiddleware turns a panic in cmd's RunE into ErrInternal.
func RecoveryMiddleware(cmd *cobra.Command) {
	next := cmd.RunE
	if next == nil {
		return
	}
	cmd.RunE = func(c *cobra.Command, args []string) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Interface("panic", r).
					Str("command", c.CommandPath()).
					Msg("Recovered from panic in handler")
				err = ErrInternal
			}
		}()
		return next(c, args)
	}
}
