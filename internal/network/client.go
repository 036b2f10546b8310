// Package network wraps the TLS-fingerprinting HTTP client every source
// fetches through. Sources treat it as fetch(url) -> text; all transport
// detail stays here.
package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

var ErrRequestFailed = errors.New("request failed")

const defaultTimeoutSeconds = 30

type Client struct {
	http       tls_client.HttpClient
	userAgents []string
	rand       *rand.Rand
}

func NewClient() (*Client, error) {
	jar, _ := fhttpcookiejar.New(nil)

	client, err := tls_client.NewHttpClient(
		tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(defaultTimeoutSeconds),
		tls_client.WithCookieJar(jar),
	)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Client{
		http:       client,
		userAgents: append([]string{}, userAgents...),
		rand:       rng,
	}, nil
}

func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.randomUA())
	}
	return c.http.Do(req)
}

// FetchText GETs target and returns the response body as a string. Extra
// headers are applied on top of the browser-like defaults.
func (c *Client) FetchText(ctx context.Context, target string, headers map[string]string) (string, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	applyHeaders(req, headers)

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: http %d", ErrRequestFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchTextRetry is FetchText with one bounded retry, reserved for the
// highest-value source. The pause between attempts is short and fixed.
func (c *Client) FetchTextRetry(ctx context.Context, target string, headers map[string]string) (string, error) {
	text, err := c.FetchText(ctx, target, headers)
	if err == nil {
		return text, nil
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(2 * time.Second):
	}
	return c.FetchText(ctx, target, headers)
}

func applyHeaders(req *fhttp.Request, headers map[string]string) {
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	}
	if req.Header.Get("Accept-Language") == "" {
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	}
}

func (c *Client) randomUA() string {
	if len(c.userAgents) == 0 {
		return ""
	}
	return c.userAgents[c.rand.Intn(len(c.userAgents))]
}
