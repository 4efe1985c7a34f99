package work24

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/work24-mcp/work24-mcp/internal/logger"
	"github.com/work24-mcp/work24-mcp/internal/payload"
)

const (
	// DefaultBaseURL is the root shared by both API families.
	DefaultBaseURL = "https://www.work24.go.kr/cm/openApi/call"
	userAgent      = "work24-mcp"
	timeout        = 30 * time.Second
	// Max runes of a response body kept in logs.
	logBodyLimit = 1000
	// Max runes of a response body attached to an UpstreamError.
	errBodyLimit = 500
	redacted     = "***"
	tracerName   = "github.com/work24-mcp/work24-mcp/internal/work24"
)

// API selects the credential used for a call.
type API string

const (
	// Recruit covers the recruitment and company endpoints.
	Recruit API = "RECRUIT"
	// Training covers the training course endpoints.
	Training API = "TRAINING"
)

// EnvVar returns the environment variable that holds the credential.
func (a API) EnvVar() string {
	return fmt.Sprintf("WORK24_%s_AUTH_KEY", a)
}

// Family is the path segment of an endpoint family below the base URL.
type Family string

const (
	FamilyWK Family = "wk"
	FamilyHR Family = "hr"
)

// Format is the requested serialization of the response body.
type Format string

const (
	FormatXML  Format = "XML"
	FormatJSON Format = "JSON"
)

// Credentials holds one secret per API family.
type Credentials map[API]string

// Request describes one upstream call.
type Request struct {
	Endpoint string
	Params   Params
	API      API
	// Family is used when BaseURL is empty. Defaults to FamilyWK.
	Family  Family
	BaseURL string
	// Format defaults to FormatXML.
	Format Format
}

type Client struct {
	logger      *zap.Logger
	credentials Credentials
	tracer      trace.Tracer
	HTTPClient  *http.Client
	UserAgent   string
	BaseURL     string
	// Limiter paces outbound calls when set. Work24 keys carry a daily quota.
	Limiter *rate.Limiter
}

// New returns a client that is safe for concurrent use.
func New(logger *zap.Logger, credentials Credentials) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		logger:      logger,
		credentials: credentials,
		tracer:      otel.Tracer(tracerName),
		BaseURL:     DefaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		UserAgent: userAgent,
	}
}

func (c *Client) credential(api API) (string, error) {
	secret := strings.TrimSpace(c.credentials[api])
	if secret == "" {
		return "", &ConfigurationError{API: api, EnvVar: api.EnvVar()}
	}
	return secret, nil
}

func (c *Client) endpointURL(req Request) string {
	base := req.BaseURL
	if base == "" {
		family := req.Family
		if family == "" {
			family = FamilyWK
		}
		base = strings.TrimRight(c.BaseURL, "/") + "/" + string(family)
	}
	return fmt.Sprintf("%s/%s.do", strings.TrimRight(base, "/"), req.Endpoint)
}

// Call performs exactly one GET and returns the decoded body.
func (c *Client) Call(ctx context.Context, req Request) (payload.Value, error) {
	secret, err := c.credential(req.API)
	if err != nil {
		return payload.Null(), err
	}

	format := req.Format
	if format == "" {
		format = FormatXML
	}

	q := mergeParams(secret, format, req.Params)
	endpointURL := c.endpointURL(req)
	requestID := uuid.NewString()
	log := logger.WithCallFields(c.logger, requestID, req.Endpoint)

	ctx, span := c.tracer.Start(ctx, "work24.call", trace.WithAttributes(
		attribute.String("work24.endpoint", req.Endpoint),
		attribute.String("work24.api", string(req.API)),
		attribute.String("work24.request_id", requestID),
	))
	defer span.End()

	log.Info("calling upstream",
		zap.String("url", endpointURL),
		zap.String("api", string(req.API)),
		zap.String("format", string(format)),
		zap.Any("params", redactValues(q, secret)),
	)

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return payload.Null(), errors.Wrap(err, "waiting for the rate limiter")
		}
	}

	tree, status, err := c.get(ctx, log, endpointURL, q, format, secret)
	if status != 0 {
		span.SetAttributes(attribute.Int("http.status_code", status))
	}
	if err != nil {
		var upstream *UpstreamError
		if errors.As(err, &upstream) {
			upstream.Endpoint = req.Endpoint
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error("upstream call failed", zap.Int("status", status), zap.Error(err))
		return payload.Null(), err
	}

	span.SetStatus(codes.Ok, "")
	if log.Core().Enabled(zap.DebugLevel) {
		log.Debug("parsed upstream payload", zap.String("payload", redactString(renderTree(tree), secret)))
	}

	return tree, nil
}

func (c *Client) get(ctx context.Context, log *zap.Logger, endpointURL string, q url.Values, format Format, secret string) (payload.Value, int, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL, nil)
	if err != nil {
		return payload.Null(), 0, &UpstreamError{Err: redactError(err, secret)}
	}
	httpReq.URL.RawQuery = q.Encode()
	httpReq.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return payload.Null(), 0, &UpstreamError{Err: redactError(err, secret)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return payload.Null(), resp.StatusCode, &UpstreamError{
			Status: resp.StatusCode,
			Err:    errors.Wrap(redactError(err, secret), "reading body"),
		}
	}

	body := redactString(string(data), secret)
	log.Info("got upstream response",
		zap.Int("status", resp.StatusCode),
		zap.String("body", logger.TruncateForLog(body, logBodyLimit)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return payload.Null(), resp.StatusCode, &UpstreamError{
			Status: resp.StatusCode,
			Body:   logger.TruncateForLog(body, errBodyLimit),
		}
	}

	var tree payload.Value
	switch format {
	case FormatJSON:
		tree, err = payload.DecodeJSON(data)
	default:
		tree, err = payload.DecodeXML(data)
	}
	if err != nil {
		return payload.Null(), resp.StatusCode, &UpstreamError{
			Status: resp.StatusCode,
			Body:   logger.TruncateForLog(body, errBodyLimit),
			Err:    err,
		}
	}

	return tree, resp.StatusCode, nil
}

// mergeParams overlays the caller's params on the protocol defaults and drops
// every absent value.
func mergeParams(secret string, format Format, params Params) url.Values {
	merged := Params{
		"authKey":    secret,
		"returnType": string(format),
	}
	for key, value := range params {
		merged[key] = value
	}

	q := url.Values{}
	for key, value := range merged {
		if s, ok := formatParam(value); ok {
			q.Set(key, s)
		}
	}
	return q
}

// renderTree is the JSON form of a parsed payload for debug logs.
func renderTree(tree payload.Value) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tree); err != nil {
		return fmt.Sprintf("unrenderable payload: %s", err)
	}
	return strings.TrimSpace(buf.String())
}

func redactString(s, secret string) string {
	if secret == "" {
		return s
	}
	s = strings.ReplaceAll(s, secret, redacted)
	if escaped := url.QueryEscape(secret); escaped != secret {
		s = strings.ReplaceAll(s, escaped, redacted)
	}
	return s
}

// redactValues renders the query for logs with the credential masked.
func redactValues(q url.Values, secret string) map[string]string {
	out := make(map[string]string, len(q))
	for key := range q {
		if key == "authKey" {
			out[key] = redacted
			continue
		}
		out[key] = redactString(q.Get(key), secret)
	}
	return out
}

// redactError strips the credential from transport errors, which embed the
// full request URL.
func redactError(err error, secret string) error {
	if err == nil {
		return nil
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = redactString(urlErr.URL, secret)
	}
	if msg := redactString(err.Error(), secret); msg != err.Error() {
		return errors.New(msg)
	}
	return err
}
