package forge

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/gabkaclassic/repomaintindex/pkg/httpclient"
)

type options struct {
	baseURL    string
	token      string
	timeout    time.Duration
	maxRetries int
	userAgent  string
	headers    httpclient.Headers
	limiter    *rate.Limiter
}

// Option configures a forge Client.
type Option func(*options)

// BaseURL sets the forge's REST API base URL.
func BaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// Token sets the bearer token used for Authorization. Leave unset for
// anonymous (unauthenticated) access.
func Token(token string) Option {
	return func(o *options) { o.token = token }
}

// Timeout sets the per-request connect+read timeout.
func Timeout(timeout time.Duration) Option {
	return func(o *options) { o.timeout = timeout }
}

// MaxRetries sets the maximum retry attempts on 5xx/transport errors.
func MaxRetries(n int) Option {
	return func(o *options) { o.maxRetries = n }
}

// UserAgent overrides the default User-Agent header.
func UserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// RateLimiter arms outgoing-request pacing from a shared
// golang.org/x/time/rate.Limiter. When the forge's last-seen
// X-RateLimit-Remaining drops under a small reserve, the limiter's
// rate is tightened so later calls space themselves out before the
// forge starts returning 403s. This never turns a 403 into a non-error.
func RateLimiter(limiter *rate.Limiter) Option {
	return func(o *options) { o.limiter = limiter }
}
