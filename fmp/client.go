package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mangohow/fmpmcp/errors"
	"github.com/mangohow/fmpmcp/llog"
)

const (
	DefaultBaseURL = "https://financialmodelingprep.com/stable"

	apiKeyParam = "apikey"
)

// Fetcher 执行一次上游GET请求, 返回合法的JSON响应体
type Fetcher interface {
	Get(ctx context.Context, endpoint string) (json.RawMessage, error)
}

// Client FMP stable API 客户端, 不重试也不缓存
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout 0表示不设置超时
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: timeout}
	}
}

func NewClient(apiKey string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.apiKey == "" {
		return nil, errors.ConfigurationMissing("FMP_API_KEY")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", c.baseURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", c.baseURL)
	}
	c.baseURL = strings.TrimRight(u.String(), "/")

	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}

	return c, nil
}

// URL 拼接完整请求地址, endpoint 已含查询参数时用 & 连接 apikey
func (c *Client) URL(endpoint string) string {
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}

	return c.baseURL + endpoint + sep + apiKeyParam + "=" + url.QueryEscape(c.apiKey)
}

func (c *Client) Get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	logger := llog.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(endpoint), nil)
	if err != nil {
		return nil, errors.UpstreamTransportError(err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.UpstreamTransportError(redactError(err, c.apiKey))
	}
	defer resp.Body.Close()

	logger.Debugw("fmp request", "endpoint", endpoint, "status", resp.StatusCode, "latency", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, errors.UpstreamHttpError(resp.StatusCode, statusText(resp))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.UpstreamTransportError(err)
	}

	if !json.Valid(body) {
		return nil, errors.UpstreamMalformedResponse(fmt.Errorf("invalid JSON body (%d bytes, content-type %q)",
			len(body), resp.Header.Get("Content-Type")))
	}

	return body, nil
}

// statusText 优先使用服务端返回的原因短语
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}

	return text
}

// redactError 传输错误中的URL会带上apikey, 返回前替换掉
func redactError(err error, apiKey string) error {
	msg := err.Error()
	escaped := url.QueryEscape(apiKey)
	if apiKey == "" || (!strings.Contains(msg, apiKey) && !strings.Contains(msg, escaped)) {
		return err
	}

	msg = strings.ReplaceAll(msg, escaped, "REDACTED")
	msg = strings.ReplaceAll(msg, apiKey, "REDACTED")
	return redactedError{msg: msg, cause: err}
}

type redactedError struct {
	msg   string
	cause error
}

func (e redactedError) Error() string {
	return e.msg
}

func (e redactedError) Unwrap() error {
	return e.cause
}
