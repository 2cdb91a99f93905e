package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the command-line arguments (without the program name).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-n application name
//	-app-version application version
//	-d database URL (enables the database feature)
//	-r redis URL (enables the redis feature)
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-shutdown-timeout graceful shutdown timeout
//	-token-sign-key bearer token signing key
//	-token-issuer bearer token issuer
//	-log-level log level
//	-log-format log format (json, console)
//	-db-pool-max-size, -redis-pool-max-size pool sizes
//	-health-probe-interval background health probe period
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-fall", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		serverAddress       NetAddress
		appName             string
		appVersion          string
		databaseURL         string
		redisURL            string
		jsonConfigPath      string
		requestTimeout      time.Duration
		shutdownTimeout     time.Duration
		tokenSignKey        string
		tokenIssuer         string
		logLevel            string
		logFormat           string
		dbPoolMaxSize       int
		redisPoolMaxSize    int
		healthProbeInterval time.Duration
	)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&appName, "n", "", "Application name")
	fs.StringVar(&appVersion, "app-version", "", "Application version")
	fs.StringVar(&databaseURL, "d", "", "Database URL")
	fs.StringVar(&redisURL, "r", "", "Redis URL")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&logFormat, "log-format", "", "Log format (json, console)")
	fs.IntVar(&dbPoolMaxSize, "db-pool-max-size", 0, "Database pool max size")
	fs.IntVar(&redisPoolMaxSize, "redis-pool-max-size", 0, "Redis pool max size")
	fs.DurationVar(&healthProbeInterval, "health-probe-interval", 0, "Health probe interval")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			Name:         appName,
			Version:      appVersion,
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
		},
		Server: Server{
			HTTPAddress:     serverAddress.String(),
			RequestTimeout:  requestTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		Storage: Storage{
			DB: DB{
				URL:  databaseURL,
				Pool: Pool{MaxSize: dbPoolMaxSize},
			},
			Redis: Redis{
				URL:  redisURL,
				Pool: Pool{MaxSize: redisPoolMaxSize},
			},
		},
		Log: Log{
			Level:  logLevel,
			Format: logFormat,
		},
		Workers:      Workers{HealthProbeInterval: healthProbeInterval},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
