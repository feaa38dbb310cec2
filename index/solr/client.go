package solr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/thesaurus/index"
)

const (
	DefaultUniqueKey  = "id"
	DefaultPageSize   = 500
	DefaultMaxRetries = 3
	DefaultRetryDelay = 500 * time.Millisecond
	DefaultTimeout    = 60 * time.Second

	firstCursorMark = "*"

	jsonContentType = "application/json"
	formContentType = "application/x-www-form-urlencoded"
)

// Client is an index.Connector for an Apache Solr core.
//
// UpdateByQuery runs in two phases: it pages through every matching document
// that does not yet carry all payload values (cursorMark paging on the unique
// key), then sends atomic "add-distinct" updates for the collected IDs in
// chunks and commits.
type Client struct {
	baseURL    string
	core       string
	uniqueKey  string
	pageSize   int
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

var _ index.Connector = (*Client)(nil)

// Option configures a Client.
type Option func(*Client) error

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		c.httpClient = hc
		return nil
	}
}

// WithUniqueKey sets the schema's unique key field. Default "id".
func WithUniqueKey(field string) Option {
	return func(c *Client) error {
		if field != "" {
			c.uniqueKey = field
		}
		return nil
	}
}

// WithPageSize sets the rows per select page and the documents per update
// request.
func WithPageSize(n int) Option {
	return func(c *Client) error {
		if n < 1 {
			return ErrInvalidPageSize
		}
		c.pageSize = n
		return nil
	}
}

// WithRetry sets how often transient failures are attempted and the base
// delay between attempts.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(c *Client) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		c.maxRetries = maxAttempts
		c.retryDelay = baseDelay
		return nil
	}
}

// WithLogger sets the logger. Default slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// NewClient creates a client for the core at baseURL, e.g.
// NewClient("http://localhost:8983/solr", "documents").
func NewClient(baseURL, core string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrMissingURL
	}
	if core == "" {
		return nil, ErrMissingCore
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse solr URL: %w", err)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		core:       core,
		uniqueKey:  DefaultUniqueKey,
		pageSize:   DefaultPageSize,
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	c.logger = c.logger.With("component", "solr", "core", core)
	return c, nil
}

// UpdateByQuery implements index.Connector.
func (c *Client) UpdateByQuery(ctx context.Context, q index.Query, payload *index.Payload) (int, error) {
	if payload == nil || payload.Len() == 0 {
		return 0, nil
	}

	ids, err := c.selectUntagged(ctx, q, payload)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	for start := 0; start < len(ids); start += c.pageSize {
		end := min(start+c.pageSize, len(ids))
		if err := c.update(ctx, ids[start:end], payload); err != nil {
			return 0, err
		}
	}

	c.logger.Debug("tagged documents", "q", q.Text, "count", len(ids))
	return len(ids), nil
}

type solrError struct {
	Msg  string `json:"msg"`
	Code int    `json:"code"`
}

type selectResponse struct {
	Response struct {
		NumFound int              `json:"numFound"`
		Docs     []map[string]any `json:"docs"`
	} `json:"response"`
	NextCursorMark string     `json:"nextCursorMark"`
	Error          *solrError `json:"error"`
}

type updateResponse struct {
	ResponseHeader struct {
		Status int `json:"status"`
	} `json:"responseHeader"`
	Error *solrError `json:"error"`
}

// selectUntagged collects the unique keys of all matching documents that do
// not carry every payload value yet. All pages are read before any update is
// sent, so the updates cannot shift the result set while paging. Parameters
// go in a form body since the filter grows with the payload.
func (c *Client) selectUntagged(ctx context.Context, q index.Query, payload *index.Payload) ([]any, error) {
	params := q.Values()
	params.Set("fq", untaggedFilter(payload))
	params.Set("fl", c.uniqueKey)
	params.Set("rows", strconv.Itoa(c.pageSize))
	params.Set("sort", c.uniqueKey+" asc")
	params.Set("wt", "json")

	c.logger.Debug("select untagged documents",
		"q", q.Text, "defType", params.Get("defType"), "q.op", params.Get("q.op"), "fq", params.Get("fq"))

	var ids []any
	mark := firstCursorMark
	for {
		params.Set("cursorMark", mark)

		var resp selectResponse
		form := []byte(params.Encode())
		if err := c.do(ctx, http.MethodPost, c.endpoint("select"), formContentType, form, &resp, func() error {
			if resp.Error != nil {
				return fmt.Errorf("%w: %s", ErrSolr, resp.Error.Msg)
			}
			return nil
		}); err != nil {
			return nil, fmt.Errorf("select %q: %w", q.Text, err)
		}

		for _, doc := range resp.Response.Docs {
			if id, ok := doc[c.uniqueKey]; ok {
				ids = append(ids, id)
			}
		}

		if resp.NextCursorMark == "" || resp.NextCursorMark == mark {
			break
		}
		mark = resp.NextCursorMark
	}
	return ids, nil
}

// update sends one atomic update request for ids and commits it.
func (c *Client) update(ctx context.Context, ids []any, payload *index.Payload) error {
	docs := make([]map[string]any, len(ids))
	for i, id := range ids {
		doc := map[string]any{c.uniqueKey: id}
		for _, facet := range payload.Facets() {
			v, _ := payload.Get(facet)
			doc[facet] = map[string]any{"add-distinct": v.Values()}
		}
		docs[i] = doc
	}

	body, err := json.Marshal(docs)
	if err != nil {
		return err
	}

	var resp updateResponse
	endpoint := c.endpoint("update") + "?" + url.Values{"commit": {"true"}, "wt": {"json"}}.Encode()
	err = c.do(ctx, http.MethodPost, endpoint, jsonContentType, body, &resp, func() error {
		if resp.Error != nil {
			return fmt.Errorf("%w: %s", ErrSolr, resp.Error.Msg)
		}
		if resp.ResponseHeader.Status != 0 {
			return fmt.Errorf("%w: update status %d", ErrSolr, resp.ResponseHeader.Status)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update %d documents: %w", len(ids), err)
	}
	return nil
}

// do sends a request with retries, decodes the JSON answer into out and
// runs check on it. Network failures and 5xx answers are retried.
func (c *Client) do(ctx context.Context, method, endpoint, contentType string, body []byte, out any, check func() error) error {
	return RetryWithBackoff(ctx, c.logger, func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return permanent(err)
		}
		if body != nil {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return permanent(ctx.Err())
			}
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			statusErr := fmt.Errorf("%w: %s: %s", ErrSolr, resp.Status, errorMessage(data))
			if resp.StatusCode >= 500 {
				return statusErr
			}
			return permanent(statusErr)
		}

		if err := json.Unmarshal(data, out); err != nil {
			return permanent(fmt.Errorf("%w: decode response: %w", ErrSolr, err))
		}
		if err := check(); err != nil {
			return permanent(err)
		}
		return nil
	}, c.maxRetries, c.retryDelay)
}

func (c *Client) endpoint(handler string) string {
	return c.baseURL + "/" + url.PathEscape(c.core) + "/" + handler
}

// errorMessage extracts error.msg from a Solr error body, falling back to
// the raw body.
func errorMessage(data []byte) string {
	var body struct {
		Error *solrError `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != nil && body.Error.Msg != "" {
		return body.Error.Msg
	}
	msg := strings.TrimSpace(string(data))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

// untaggedFilter renders a filter query excluding documents that already
// carry every payload value: -(f1:"v1" AND f1:"v2" AND f2:"v3").
func untaggedFilter(payload *index.Payload) string {
	var clauses []string
	for _, facet := range payload.Facets() {
		v, _ := payload.Get(facet)
		for _, value := range v.Values() {
			clauses = append(clauses, escapeField(facet)+":"+quote(value))
		}
	}
	return "-(" + strings.Join(clauses, " AND ") + ")"
}

// escapeField backslash-escapes query syntax characters in a field name.
func escapeField(field string) string {
	var b strings.Builder
	for _, r := range field {
		if strings.ContainsRune(`\+-!():^[]"{}~*?|&/ `, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func quote(value string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range value {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
