package gemini

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/draft-companion/internal/domain/explanation"
	"github.com/riskibarqy/draft-companion/internal/platform/logging"
	"github.com/riskibarqy/draft-companion/internal/platform/resilience"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-flash-latest"
	maxBodyBytes   = 2 << 20
)

var errGeminiTransient = crerr.New("gemini transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Model          string
	Timeout        time.Duration
	MinInterval    time.Duration
	Burst          int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client calls the generateContent endpoint of the Gemini REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	limiter    *rate.Limiter
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      model,
		limiter:    rate.NewLimiter(limit, max(cfg.Burst, 1)),
		logger:     logger,
		breaker:    resilience.NewOptionalCircuitBreaker(cfg.CircuitBreaker),
	}
}

type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends one prompt and returns the concatenated candidate text.
func (c *Client) Generate(ctx context.Context, req explanation.Request) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: gemini API key is not set", explanation.ErrUnauthorized)
	}
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "gemini circuit breaker rejected request", "state", c.breaker.State())
		return "", crerr.Wrap(err, "gemini is temporarily unavailable")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", crerr.Wrap(err, "wait for gemini rate limiter")
	}

	payload := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: req.Prompt}}}},
		GenerationConfig: generationConfig{
			MaxOutputTokens: req.MaxOutputTokens,
			Temperature:     req.Temperature,
		},
	}
	if strings.TrimSpace(req.SystemInstruction) != "" {
		payload.SystemInstruction = &content{Parts: []part{{Text: req.SystemInstruction}}}
	}

	raw, err := c.execute(ctx, payload)
	if err != nil {
		if stderrors.Is(err, errGeminiTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return "", err
	}
	c.breaker.RecordSuccess()

	var decoded generateResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return "", crerr.Wrap(err, "decode gemini response")
	}

	var text strings.Builder
	for _, candidate := range decoded.Candidates {
		for _, p := range candidate.Content.Parts {
			text.WriteString(p.Text)
		}
		if text.Len() > 0 {
			break
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", explanation.ErrEmptyResponse
	}

	return text.String(), nil
}

func (c *Client) execute(ctx context.Context, payload generateRequest) ([]byte, error) {
	body, err := sonic.Marshal(payload)
	if err != nil {
		return nil, crerr.Wrap(err, "encode gemini request")
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, crerr.Wrap(err, "build gemini request")
	}
	httpReq.Header.Set("content-type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	startedAt := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %s", errGeminiTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errGeminiTransient, err)
	}

	c.logger.DebugContext(ctx, "gemini request finished",
		"model", c.model,
		"status", resp.StatusCode,
		"duration_ms", time.Since(startedAt).Milliseconds(),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	var envelope errorEnvelope
	_ = sonic.Unmarshal(raw, &envelope)
	message := sanitizeSensitiveText(envelope.Error.Message, c.apiKey)
	if message == "" {
		message = abbreviateBody(raw)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden || strings.Contains(message, "API key"):
		return nil, fmt.Errorf("%w: gemini status=%d: %s", explanation.ErrUnauthorized, resp.StatusCode, message)
	case isRetryableStatus(resp.StatusCode):
		return nil, fmt.Errorf("%w: gemini status=%d: %s", errGeminiTransient, resp.StatusCode, message)
	default:
		return nil, crerr.Newf("gemini status=%d: %s", resp.StatusCode, message)
	}
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" || apiKey == "" {
		return value
	}
	return strings.ReplaceAll(value, apiKey, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
