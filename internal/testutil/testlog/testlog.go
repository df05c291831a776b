// Package testlog bootstraps per-test logging.
package testlog

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/ParaeagleRyanC/ComputerNetworks-TcpClientV2/internal/logging"
)

// New returns a logger scoped to the running test.
func New(t *testing.T) zerolog.Logger {
	t.Helper()
	logger := logging.New(logging.ProfileTest)
	logger.Info().Str("test", t.Name()).Msg("start")
	return logger
}
