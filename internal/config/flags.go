package config

import (
	"errors"
	"flag"
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

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a facade address in format [host]:[port]
//	-d local cache database file path
//	-remote-dsn remote document store DSN
//	-provider-url identity provider base URL
//	-provider-key identity provider API key
//	-provider-timeout provider request timeout (e.g., "15s")
//	-facade-timeout facade request timeout (e.g., "30s")
//	-reconcile-interval full reconciliation interval (e.g., "5m")
//	-session-ttl local session lifetime fallback (e.g., "12h")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var facadeAddress NetAddress
	var localDBPath string
	var remoteDSN string
	var providerURL string
	var providerKey string
	var providerTimeout time.Duration
	var facadeTimeout time.Duration
	var reconcileInterval time.Duration
	var sessionTTL time.Duration
	var jsonConfigPath string

	flag.Var(&facadeAddress, "a", "Facade net address host:port")
	flag.StringVar(&localDBPath, "d", "", "Local cache database file path")
	flag.StringVar(&remoteDSN, "remote-dsn", "", "Remote document store DSN")
	flag.StringVar(&providerURL, "provider-url", "", "Identity provider base URL")
	flag.StringVar(&providerKey, "provider-key", "", "Identity provider API key")
	flag.DurationVar(&providerTimeout, "provider-timeout", 0, "Provider request timeout (e.g., 15s)")
	flag.DurationVar(&facadeTimeout, "facade-timeout", 0, "Facade request timeout (e.g., 30s)")
	flag.DurationVar(&reconcileInterval, "reconcile-interval", 0, "Full reconciliation interval (e.g., 5m)")
	flag.DurationVar(&sessionTTL, "session-ttl", 0, "Local session lifetime fallback (e.g., 12h)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			SessionTTL: sessionTTL,
		},
		Provider: Provider{
			BaseURL:        providerURL,
			APIKey:         providerKey,
			RequestTimeout: providerTimeout,
		},
		Remote: Remote{
			DSN: remoteDSN,
		},
		Storage: Storage{
			DB: DB{
				Path: localDBPath,
			},
		},
		Facade: Facade{
			HTTPAddress:    facadeAddress.String(),
			RequestTimeout: facadeTimeout,
		},
		Workers: Workers{
			ReconcileInterval: reconcileInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
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
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
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

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
