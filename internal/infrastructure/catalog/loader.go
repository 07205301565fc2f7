package catalog

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/draft-companion/internal/domain/player"
	"github.com/riskibarqy/draft-companion/internal/platform/logging"
	"github.com/valyala/fasthttp"
)

const (
	defaultFetchTimeout = 15 * time.Second
	maxCSVBytes         = 16 << 20
)

// NewLoader picks a remote loader for http(s) sources and a file loader
// otherwise.
func NewLoader(source string, timeout time.Duration, logger *logging.Logger) (player.Loader, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("catalog source is required")
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return NewHTTPLoader(source, timeout, logger), nil
	}
	return NewFileLoader(source), nil
}

type FileLoader struct {
	path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

func (l *FileLoader) Load(_ context.Context) ([]player.Player, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read catalog file %s", l.path)
	}
	players, err := ParseCSV(bytes.NewReader(raw))
	if err != nil {
		return nil, crerr.Wrapf(err, "parse catalog file %s", l.path)
	}
	return players, nil
}

type HTTPLoader struct {
	url     string
	timeout time.Duration
	client  *fasthttp.Client
	logger  *logging.Logger
}

func NewHTTPLoader(url string, timeout time.Duration, logger *logging.Logger) *HTTPLoader {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &HTTPLoader{
		url:     url,
		timeout: timeout,
		client: &fasthttp.Client{
			Name:                "draft-companion",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxCSVBytes,
		},
		logger: logger,
	}
}

func (l *HTTPLoader) Load(ctx context.Context) ([]player.Player, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(l.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "text/csv")

	deadline := time.Now().Add(l.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	startedAt := time.Now()
	if err := l.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, crerr.Wrapf(err, "fetch catalog %s", l.url)
	}
	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		return nil, crerr.Newf("fetch catalog %s: status=%d", l.url, status)
	}

	body := append([]byte(nil), resp.Body()...)
	l.logger.InfoContext(ctx, "catalog fetched",
		"url", l.url,
		"bytes", len(body),
		"duration_ms", time.Since(startedAt).Milliseconds(),
	)

	players, err := ParseCSV(bytes.NewReader(body))
	if err != nil {
		return nil, crerr.Wrapf(err, "parse catalog %s", l.url)
	}
	return players, nil
}
