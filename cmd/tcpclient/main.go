package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/ParaeagleRyanC/ComputerNetworks-TcpClientV2/internal/client"
	"github.com/ParaeagleRyanC/ComputerNetworks-TcpClientV2/internal/logging"
	"github.com/ParaeagleRyanC/ComputerNetworks-TcpClientV2/internal/protocol"
	"github.com/ParaeagleRyanC/ComputerNetworks-TcpClientV2/internal/script"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	logger := logging.New(logging.ProfileRuntime)
	if cfg.Verbose {
		logger = logging.Verbose(logger)
		logger.Info().Msg("verbose logging enabled")
	}
	logger.Info().Str("host", cfg.Host).Str("port", cfg.Port).Str("file", cfg.File).Msg("starting session")

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("session failed")
		os.Exit(1)
	}
}

func run(cfg config, logger zerolog.Logger) error {
	src, err := openScript(cfg.File)
	if err != nil {
		return err
	}
	defer func() {
		if err := src.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close script source")
		}
	}()

	sess, err := client.Connect(context.Background(), cfg.Host, cfg.Port, logger)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	return sess.Run(script.NewReader(src), func(action protocol.Action, response string) bool {
		fmt.Println(response)
		return true // each request yields exactly one response
	})
}

// openScript opens the script source, with "-" meaning stdin. A regular
// file must be non-empty.
func openScript(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open script %s: %w", name, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat script %s: %w", name, err)
	}
	if info.Size() == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("script file %s is empty", name)
	}
	return f, nil
}
