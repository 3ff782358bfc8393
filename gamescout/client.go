package gamescout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var dumpAPICalls = os.Getenv("SCOUT_API_DEBUG") == "1"

// A Client allows consuming the GameScout API
type Client struct {
	Key           string
	HTTPClient    *http.Client
	BaseURL       string
	RetryPatterns []time.Duration
	UserAgent     string
}

func defaultRetryPatterns() []time.Duration {
	return []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
	}
}

// ClientWithKey creates a new GameScout API client with a given
// access token. An empty key makes anonymous requests.
func ClientWithKey(key string) *Client {
	c := &Client{
		Key:           key,
		HTTPClient:    http.DefaultClient,
		RetryPatterns: defaultRetryPatterns(),
		UserAgent:     "scout",
	}
	c.SetServer("http://localhost:5000")
	return c
}

// SetServer allows changing the server to which we're making API requests
func (c *Client) SetServer(address string) *Client {
	c.BaseURL = fmt.Sprintf("%s/api", strings.TrimRight(address, "/"))
	return c
}

// SetKey installs (or, with "", removes) the bearer token
func (c *Client) SetKey(key string) {
	c.Key = key
}

// Get performs an HTTP GET request to the API
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return c.Do(req)
}

// GetResponse performs an HTTP GET request and parses the API response.
func (c *Client) GetResponse(ctx context.Context, url string, dst interface{}) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return errors.WithStack(err)
	}

	err = ParseAPIResponse(dst, resp)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// SendJSON performs a request with a JSON-encoded body (any method).
func (c *Client) SendJSON(ctx context.Context, method string, url string, payload interface{}) (*http.Response, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.Do(req)
}

// SendJSONResponse performs a JSON request *and* parses the API response.
// dst may be nil when the caller only cares about success.
func (c *Client) SendJSONResponse(ctx context.Context, method string, url string, payload interface{}, dst interface{}) error {
	resp, err := c.SendJSON(ctx, method, url, payload)
	if err != nil {
		return errors.WithStack(err)
	}

	err = ParseAPIResponse(dst, resp)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Do performs a request (any method). It takes care of bearer
// authentication, sets the proper user agent, tags the request
// with an ID and retries when the server is overloaded.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.Key != "" {
		req.Header.Set("Authorization", "Bearer "+c.Key)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())

	if dumpAPICalls {
		fmt.Fprintf(os.Stderr, "[request] %s %s\n", req.Method, req.URL)
	}

	var res *http.Response
	var err error

	retryPatterns := append(append([]time.Duration{}, c.RetryPatterns...), time.Millisecond)

	for i, sleepTime := range retryPatterns {
		if i > 0 && req.GetBody != nil {
			req.Body, err = req.GetBody()
			if err != nil {
				return nil, errors.WithStack(err)
			}
		}

		res, err = c.HTTPClient.Do(req)
		if err != nil {
			return nil, err
		}

		if res.StatusCode == http.StatusServiceUnavailable && i < len(retryPatterns)-1 {
			res.Body.Close()
			time.Sleep(sleepTime + time.Duration(rand.Int()%1000)*time.Millisecond)
			continue
		}

		break
	}

	return res, err
}

// MakePath crafts an API url from our configured base URL
func (c *Client) MakePath(format string, a ...interface{}) string {
	return c.MakeValuesPath(nil, format, a...)
}

// MakeValuesPath crafts an API url from our configured base URL
func (c *Client) MakeValuesPath(values url.Values, format string, a ...interface{}) string {
	base := strings.TrimRight(c.BaseURL, "/")
	subPath := strings.Trim(fmt.Sprintf(format, a...), "/")
	path := fmt.Sprintf("%s/%s", base, subPath)
	if len(values) == 0 {
		return path
	}
	return fmt.Sprintf("%s?%s", path, values.Encode())
}
