package http

import (
	"net"
	"net/http"
	"time"
)

// Option configures the HTTP client of a Connector
type Option func(*clientConfig)

// TransportFunc wraps a round tripper; later wrappers run first
type TransportFunc func(http.RoundTripper) http.RoundTripper

type clientConfig struct {
	dialTimeout           time.Duration
	requestTimeout        time.Duration
	keepAlive             time.Duration
	tlsHandshakeTimeout   time.Duration
	responseHeaderTimeout time.Duration
	idleConnTimeout       time.Duration
	maxIdleConnsPerHost   int
	transports            []TransportFunc
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		dialTimeout:           10 * time.Second,
		requestTimeout:        60 * time.Second,
		keepAlive:             90 * time.Second,
		tlsHandshakeTimeout:   10 * time.Second,
		responseHeaderTimeout: 60 * time.Second,
		idleConnTimeout:       90 * time.Second,
		maxIdleConnsPerHost:   10,
	}
}

// WithRequestTimeout bounds a whole request including reading the body
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) { c.requestTimeout = timeout }
}

func WithDialTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) { c.dialTimeout = timeout }
}

func WithKeepAlive(keepAlive time.Duration) Option {
	return func(c *clientConfig) { c.keepAlive = keepAlive }
}

// WithResponseHeaderTimeout bounds the wait for the model to start answering
func WithResponseHeaderTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) { c.responseHeaderTimeout = timeout }
}

func WithIdleConnTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) { c.idleConnTimeout = timeout }
}

func WithTransport(transport TransportFunc) Option {
	return func(c *clientConfig) { c.transports = append(c.transports, transport) }
}

func newClient(opts ...Option) *http.Client {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	dialer := &net.Dialer{
		Timeout:   cfg.dialTimeout,
		KeepAlive: cfg.keepAlive,
	}

	var transport http.RoundTripper = &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConnsPerHost:   cfg.maxIdleConnsPerHost,
		TLSHandshakeTimeout:   cfg.tlsHandshakeTimeout,
		ResponseHeaderTimeout: cfg.responseHeaderTimeout,
		IdleConnTimeout:       cfg.idleConnTimeout,
		ForceAttemptHTTP2:     true,
	}
	for _, wrap := range cfg.transports {
		transport = wrap(transport)
	}

	return &http.Client{
		Timeout:   cfg.requestTimeout,
		Transport: transport,
	}
}
