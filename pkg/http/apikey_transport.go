package http

import "net/http"

// APIKeyHeader is the header Google generative endpoints read the key from.
const APIKeyHeader = "X-Goog-Api-Key"

type apiKeyTransport struct {
	header    string
	key       string
	transport http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	if t.key != "" {
		reqCopy.Header.Set(t.header, t.key)
	}

	return t.transport.RoundTrip(reqCopy)
}

// WithAPIKey sets the API key header on every outbound request.
func WithAPIKey(key string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &apiKeyTransport{
			header:    APIKeyHeader,
			key:       key,
			transport: rt,
		}
	})
}
