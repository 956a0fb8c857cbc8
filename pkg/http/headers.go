package http

import "net/http"

// headerTransport sets fixed headers on every outbound request
type headerTransport struct {
	headers   http.Header
	transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	for name, values := range t.headers {
		out.Header[name] = values
	}
	return t.transport.RoundTrip(out)
}

func withHeader(name, value string) Option {
	if value == "" {
		return func(*clientConfig) {}
	}
	h := http.Header{}
	h.Set(name, value)
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &headerTransport{headers: h, transport: rt}
	})
}

// WithAuthToken sends token as a bearer credential; an empty token sends nothing
func WithAuthToken(token string) Option {
	if token == "" {
		return withHeader("Authorization", "")
	}
	return withHeader("Authorization", "Bearer "+token)
}

func WithUserAgent(userAgent string) Option {
	return withHeader("User-Agent", userAgent)
}
