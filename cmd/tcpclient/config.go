package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	defaultHost = "localhost"
	defaultPort = "8080"
)

const usage = `Usage: tcpclient [--help] [-v] [--host HOST] [--port PORT] [--config PATH] FILE

Arguments:
  FILE   A file containing actions and messages to send to the
         server. If "-" is provided, stdin will be read.

Options:
  --help
  -v, --verbose
  --host HOSTNAME
  --port PORT
  --config PATH   optional TOML file with host, port, verbose defaults
`

type config struct {
	Host    string
	Port    string
	Verbose bool
	File    string
}

// fileConfig is the TOML key mapping for client defaults.
type fileConfig struct {
	Host    string `toml:"host"`
	Port    string `toml:"port"`
	Verbose bool   `toml:"verbose"`
}

// loadConfig resolves settings in precedence order: built-in defaults,
// then the optional config file, then explicit flags.
func loadConfig(args []string) (config, error) {
	cfg := config{Host: defaultHost, Port: defaultPort}

	fs := flag.NewFlagSet("tcpclient", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	host := fs.String("host", defaultHost, "server hostname")
	port := fs.String("port", defaultPort, "server port")
	verbose := fs.Bool("verbose", false, "enable trace logging")
	fs.BoolVar(verbose, "v", false, "enable trace logging (shorthand)")
	confPath := fs.String("config", "", "path to TOML config file")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if *confPath != "" {
		var raw fileConfig
		meta, err := toml.DecodeFile(*confPath, &raw)
		if err != nil {
			return config{}, fmt.Errorf("load config %s: %w", *confPath, err)
		}
		if meta.IsDefined("host") {
			cfg.Host = strings.TrimSpace(raw.Host)
		}
		if meta.IsDefined("port") {
			cfg.Port = strings.TrimSpace(raw.Port)
		}
		if meta.IsDefined("verbose") {
			cfg.Verbose = raw.Verbose
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Host = *host
		case "port":
			cfg.Port = *port
		case "verbose", "v":
			cfg.Verbose = *verbose
		}
	})

	if err := validatePort(cfg.Port); err != nil {
		return config{}, err
	}

	rest := fs.Args()
	if len(rest) < 1 {
		return config{}, errors.New("missing FILE argument")
	}
	if len(rest) > 1 {
		return config{}, errors.New("too many arguments")
	}
	cfg.File = rest[0]

	return cfg, nil
}

func validatePort(port string) error {
	if port == "" {
		return errors.New("port must not be empty")
	}
	for _, c := range port {
		if c < '0' || c > '9' {
			return fmt.Errorf("%q is not a valid port", port)
		}
	}
	return nil
}
