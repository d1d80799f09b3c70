package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"github.com/hamed0406/sitecheck/internal/domain"
)

const (
	userAgent = "sitecheck/1.0"

	// bodies are drained up to this size so the connection can go back to the pool
	maxDrainBytes = 1 << 20

	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 60 * time.Second
)

// HTTPProber issues one GET per attempt. Any HTTP response counts as up,
// whatever its status class: the prober reports reachability, not
// application health.
type HTTPProber struct {
	Client  *http.Client
	Timeout time.Duration
}

// NewHTTPProber returns a prober whose attempts are each bounded by timeout.
// The timeout is applied per request through the context, so the client
// itself carries none. Redirects are not followed: a 3xx is the target's
// own answer.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	return &HTTPProber{
		Client: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
		Timeout: timeout,
	}
}

func (h *HTTPProber) Probe(ctx context.Context, target string) domain.Outcome {
	u, err := url.Parse(target)
	if err != nil {
		return domain.Failure("invalid url: " + describeError(err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return domain.Failure(fmt.Sprintf("invalid url: unsupported scheme %q", u.Scheme))
	}
	if u.Host == "" {
		return domain.Failure("invalid url: missing host")
	}

	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return domain.Failure("invalid url: " + describeError(err))
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := h.Client.Do(req)
	if err != nil {
		return domain.Failure(describeError(err))
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	return domain.Success(resp.StatusCode)
}

// Close releases idle pooled connections. The prober stays usable.
func (h *HTTPProber) Close() {
	if h == nil || h.Client == nil {
		return
	}
	if tr, ok := h.Client.Transport.(*http.Transport); ok {
		tr.CloseIdleConnections()
	}
}

// describeError turns a transport error into a short human-readable cause.
func describeError(err error) string {
	var dnsErr *net.DNSError
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.As(err, &dnsErr):
		return "dns lookup failed: " + dnsErr.Err
	case errors.Is(err, syscall.ECONNREFUSED):
		return "connection refused"
	case errors.Is(err, syscall.ECONNRESET):
		return "connection reset"
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return "connection closed before response"
	}

	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err.Error()
	}
	return err.Error()
}
