// file: internals/gateway/gateway.go
//
// Satu HTTP client untuk semua endpoint: base URL + timeout tetap, token sesi ditempel otomatis.
// Tidak ada retry di sini; kebijakannya single-attempt, fail-fast.
package gateway

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"studentpoints_client/internals/configs"
	helper "studentpoints_client/internals/helpers"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	maxBodyBytes        = 4 << 20

	PathLogin = "/auth/login"
)

// endpoint publik: tidak pernah membawa bearer token
var publicPaths = map[string]bool{
	PathLogin: true,
}

// TokenSource dibaca sebelum setiap request. Token kosong = request tanpa Authorization.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Requester adalah permukaan gateway yang dipakai repository.
type Requester interface {
	Request(ctx context.Context, method, path string, body any) (*Response, error)
	Get(ctx context.Context, path string) (*Response, error)
	Post(ctx context.Context, path string, body any) (*Response, error)
	Put(ctx context.Context, path string, body any) (*Response, error)
}

var _ Requester = (*Gateway)(nil)

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	RequestID  string
}

func (r *Response) OK() bool { return r.StatusCode >= 200 && r.StatusCode < 300 }

type Gateway struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
	log     *zap.Logger
}

type Option func(*Gateway)

// WithHTTPClient mengganti client bawaan (mis. transport custom di test).
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) {
		if c != nil {
			g.client = c
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(g *Gateway) { g.log = helper.OrNop(log) }
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: configs.RequestTimeout},
		tokens:  tokens,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Request mengirim satu request. Respons non-2xx TIDAK dianggap error di layer ini;
// klasifikasinya diserahkan ke pemanggil (repository). Error hanya untuk kegagalan transport.
func (g *Gateway) Request(ctx context.Context, method, path string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := sonic.Marshal(body)
		if err != nil {
			return nil, &TransportError{Kind: TransportEncode, Method: method, Path: path, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return nil, &TransportError{Kind: TransportEncode, Method: method, Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	reqID := uuid.NewString()
	req.Header.Set(HeaderRequestID, reqID)

	if g.tokens != nil && !publicPaths[path] {
		// token yang gagal dibaca diperlakukan seperti tidak ada token; server yang menolak
		tok, terr := g.tokens.Token(ctx)
		if terr != nil {
			g.log.Warn("token read failed", zap.String("request_id", reqID), zap.Error(terr))
		}
		if tok = strings.TrimSpace(tok); tok != "" {
			req.Header.Set(HeaderAuthorization, "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		terr := classifyTransport(method, path, err)
		g.log.Warn("request failed",
			zap.String("request_id", reqID),
			zap.String("method", method),
			zap.String("path", path),
			zap.String("kind", string(terr.Kind)),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return nil, terr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classifyTransport(method, path, err)
	}

	g.log.Info("request",
		zap.String("request_id", reqID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
		RequestID:  reqID,
	}, nil
}

func (g *Gateway) Get(ctx context.Context, path string) (*Response, error) {
	return g.Request(ctx, http.MethodGet, path, nil)
}

func (g *Gateway) Post(ctx context.Context, path string, body any) (*Response, error) {
	return g.Request(ctx, http.MethodPost, path, body)
}

func (g *Gateway) Put(ctx context.Context, path string, body any) (*Response, error) {
	return g.Request(ctx, http.MethodPut, path, body)
}

