package config

import (
	"net"
	"strconv"
	"time"
)

// Config is built once at startup and is never modified afterwards.
type Config struct {
	Port        int
	BindAddress string

	Root string

	Compression    string
	MaxConnections int

	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.BindAddress, strconv.Itoa(c.Port))
}
