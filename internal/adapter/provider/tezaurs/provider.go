package tezaurs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/tezaurs-gateway/internal/config"
	"github.com/heartmarshall/tezaurs-gateway/internal/domain"
	"github.com/heartmarshall/tezaurs-gateway/internal/provider"
)

const (
	defaultBaseURL      = "http://api.tezaurs.lv:8182"
	defaultTimeout      = 10 * time.Second
	defaultMaxBodyBytes = 4 << 20
)

// Service routes. Each takes the word or phrase as the final path segment.
const (
	opAnalyze   = "analyze"
	opTokenize  = "tokenize"
	opNormalize = "normalize_phrase"
	opParadigm  = "suitable_paradigm"
	opInflect   = "inflect_phrase"
)

// Provider calls the Tezaurs morphology service and decodes its answers.
// It never retries; a failed call returns a *provider.Error of kind transport.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	maxBody    int64
	log        *slog.Logger
}

// NewProvider creates a Provider configured from TezaursConfig.
func NewProvider(cfg config.TezaursConfig, logger *slog.Logger) *Provider {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.MaxIdleConns > 0 {
		transport.MaxIdleConnsPerHost = cfg.MaxIdleConns
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
		userAgent:  cfg.UserAgent,
		maxBody:    maxBody,
		log:        logger.With("adapter", "tezaurs"),
	}
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL string, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		maxBody:    defaultMaxBodyBytes,
		log:        logger.With("adapter", "tezaurs"),
	}
}

// Analyze returns every morphological analysis of word.
func (p *Provider) Analyze(ctx context.Context, word string) ([]domain.AnalyzedWord, error) {
	body, err := p.get(ctx, opAnalyze, word)
	if err != nil {
		return nil, err
	}
	words, err := DecodeAnalyses(body)
	if err != nil {
		return nil, withOp(err, opAnalyze)
	}
	p.log.DebugContext(ctx, "tezaurs response", slog.String("op", opAnalyze), slog.Int("analyses", len(words)))
	return words, nil
}

// Tokenize splits sentence into tagged tokens.
func (p *Provider) Tokenize(ctx context.Context, sentence string) ([]domain.Token, error) {
	body, err := p.get(ctx, opTokenize, sentence)
	if err != nil {
		return nil, err
	}
	tokens, err := DecodeTokens(body)
	if err != nil {
		return nil, withOp(err, opTokenize)
	}
	p.log.DebugContext(ctx, "tezaurs response", slog.String("op", opTokenize), slog.Int("tokens", len(tokens)))
	return tokens, nil
}

// NormalizePhrase returns the phrase in its base (nominative) form.
// The response body is returned verbatim.
func (p *Provider) NormalizePhrase(ctx context.Context, sentence string) (string, error) {
	body, err := p.get(ctx, opNormalize, sentence)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// SuitableParadigms suggests inflection paradigms for an unknown word.
func (p *Provider) SuitableParadigms(ctx context.Context, word string) ([]domain.Paradigm, error) {
	body, err := p.get(ctx, opParadigm, word)
	if err != nil {
		return nil, err
	}
	paradigms, err := DecodeParadigms(body)
	if err != nil {
		return nil, withOp(err, opParadigm)
	}
	p.log.DebugContext(ctx, "tezaurs response", slog.String("op", opParadigm), slog.Int("paradigms", len(paradigms)))
	return paradigms, nil
}

// InflectPhrase renders sentence in every case the service can produce.
// Result order is unspecified.
func (p *Provider) InflectPhrase(ctx context.Context, sentence string) ([]domain.Inflection, error) {
	body, err := p.get(ctx, opInflect, sentence)
	if err != nil {
		return nil, err
	}
	inflections, err := DecodeInflections(body)
	if err != nil {
		return nil, withOp(err, opInflect)
	}
	p.log.DebugContext(ctx, "tezaurs response", slog.String("op", opInflect), slog.Int("inflections", len(inflections)))
	return inflections, nil
}

// Endpoint builds the request URL for op. The argument is escaped as a single
// path segment: spaces become %20, "/" becomes %2F and non-ASCII letters are
// percent-encoded UTF-8.
func (p *Provider) Endpoint(op, arg string) string {
	return p.baseURL + "/" + op + "/" + url.PathEscape(arg)
}

// get performs the GET and returns the raw body of a 2xx answer.
func (p *Provider) get(ctx context.Context, op, arg string) ([]byte, error) {
	reqURL := p.Endpoint(op, arg)

	p.log.DebugContext(ctx, "tezaurs request", slog.String("op", op), slog.String("arg", arg))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, provider.NewTransportError(op, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.ErrorContext(ctx, "tezaurs request failed",
			slog.String("op", op),
			slog.String("arg", arg),
			slog.String("error", err.Error()),
		)
		return nil, provider.NewTransportError(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBody+1))
	if err != nil {
		return nil, provider.NewTransportError(op, fmt.Errorf("read body: %w", err))
	}
	if int64(len(body)) > p.maxBody {
		return nil, provider.NewTransportError(op, fmt.Errorf("response body exceeds %d bytes", p.maxBody))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.log.WarnContext(ctx, "tezaurs unexpected status",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode),
		)
		return nil, provider.NewStatusError(op, resp.StatusCode, parseRemoteError(body))
	}

	return body, nil
}

// parseRemoteError extracts the service's error envelope, if the body is one.
func parseRemoteError(body []byte) *provider.RemoteError {
	var envelope apiErrorBody
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == nil {
		return nil
	}
	e := envelope.Error

	remote := &provider.RemoteError{}
	switch {
	case e.ErrorCode != nil:
		remote.Code = *e.ErrorCode
	case e.Code != nil:
		remote.Code = *e.Code
	}
	switch {
	case e.ErrorMsg != nil:
		remote.Message = *e.ErrorMsg
	case e.Message != nil:
		remote.Message = *e.Message
	}
	for _, rp := range e.RequestParams {
		remote.RequestParams = append(remote.RequestParams, provider.RequestParam{Key: rp.Key, Value: rp.Value})
	}
	return remote
}

func withOp(err error, op string) error {
	var pe *provider.Error
	if errors.As(err, &pe) && pe.Op == "" {
		pe.Op = op
	}
	return err
}
