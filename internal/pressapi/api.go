package pressapi

import (
	"github.com/imroc/req/v3"
	"github.com/pressgang/pressgang/internal/version"
)

const (
	HeaderUserAgent   = "User-Agent"
	HeaderVersion     = "X-Pressgang-Version"
	HeaderIfMatch     = "If-Match"
	HeaderETag        = "ETag"
	HeaderContentType = "Content-Type"
)

// Client is the HTTP client for the publishing service. Retry policy is
// deliberately not configured here; the engine's executor owns retries for
// publish calls, and state store failures are fatal to the run.
type Client struct {
	http    *req.Client
	baseURL string

	Posts *PostsAPI
	State *StateAPI
}

// New creates a Client for the given server. The token is sent as a bearer
// credential on every request.
func New(baseURL, token string) *Client {
	http := req.C().
		SetBaseURL(baseURL).
		SetUserAgent(version.UserAgent()).
		SetCommonHeader(HeaderVersion, version.Version).
		SetJsonMarshal(jsonMarshal).
		SetJsonUnmarshal(jsonUnmarshal).
		SetCommonErrorResult(&APIError{})

	if token != "" {
		http.SetCommonBearerAuthToken(token)
	}

	return &Client{
		http:    http,
		baseURL: baseURL,
		Posts:   newPostsAPI(http),
		State:   newStateAPI(http),
	}
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}
