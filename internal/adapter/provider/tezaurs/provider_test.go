package tezaurs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/tezaurs-gateway/internal/adapter/provider/tezaurs"
	"github.com/heartmarshall/tezaurs-gateway/internal/adapter/provider/tezaurs/tezaurstest"
	"github.com/heartmarshall/tezaurs-gateway/internal/config"
	"github.com/heartmarshall/tezaurs-gateway/internal/provider"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProvider_Analyze(t *testing.T) {
	t.Parallel()

	srv := tezaurstest.NewServer(t)
	srv.Analyze("jūra", tezaurstest.JuraAnalyses()...)

	p := tezaurs.NewProviderWithURL(srv.URL, newTestLogger())
	words, err := p.Analyze(context.Background(), "jūra")
	require.NoError(t, err)
	assert.Equal(t, tezaurstest.JuraAnalyses(), words)
	assert.Equal(t, []string{"/analyze/j%C5%ABra"}, srv.Requests())
}

func TestProvider_Tokenize(t *testing.T) {
	t.Parallel()

	srv := tezaurstest.NewServer(t)
	srv.Tokenize("es domāju", tezaurstest.EsDomajuTokens()...)

	p := tezaurs.NewProviderWithURL(srv.URL, newTestLogger())
	tokens, err := p.Tokenize(context.Background(), "es domāju")
	require.NoError(t, err)
	assert.Equal(t, tezaurstest.EsDomajuTokens(), tokens)
	assert.Equal(t, []string{"/tokenize/es%20dom%C4%81ju"}, srv.Requests())
}

func TestProvider_NormalizePhrase(t *testing.T) {
	t.Parallel()

	const want = "Latvijas Universitātes Matemātikas un Informātikas Institūts"

	srv := tezaurstest.NewServer(t)
	srv.Normalize(tezaurstest.InstitutePhrase, want)

	p := tezaurs.NewProviderWithURL(srv.URL, newTestLogger())
	got, err := p.NormalizePhrase(context.Background(), tezaurstest.InstitutePhrase)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestProvider_SuitableParadigms(t *testing.T) {
	t.Parallel()

	srv := tezaurstest.NewServer(t)
	srv.Paradigms("pokemonizators", tezaurstest.PokemonizatorsParadigms()...)

	p := tezaurs.NewProviderWithURL(srv.URL, newTestLogger())
	got, err := p.SuitableParadigms(context.Background(), "pokemonizators")
	require.NoError(t, err)
	assert.Equal(t, tezaurstest.PokemonizatorsParadigms(), got)
}

func TestProvider_InflectPhrase(t *testing.T) {
	t.Parallel()

	srv := tezaurstest.NewServer(t)
	srv.Inflect(tezaurstest.InstitutePhrase, tezaurstest.InstituteInflections()...)

	p := tezaurs.NewProviderWithURL(srv.URL, newTestLogger())
	got, err := p.InflectPhrase(context.Background(), tezaurstest.InstitutePhrase)
	require.NoError(t, err)
	assert.ElementsMatch(t, tezaurstest.InstituteInflections(), got)
}

func TestProvider_Endpoint(t *testing.T) {
	t.Parallel()

	p := tezaurs.NewProviderWithURL("http://api.tezaurs.lv:8182/", newTestLogger())

	tests := []struct {
		op, arg, want string
	}{
		{"analyze", "jūra", "http://api.tezaurs.lv:8182/analyze/j%C5%ABra"},
		{"tokenize", "es domāju", "http://api.tezaurs.lv:8182/tokenize/es%20dom%C4%81ju"},
		{"analyze", "a/b", "http://api.tezaurs.lv:8182/analyze/a%2Fb"},
		{"analyze", "50%", "http://api.tezaurs.lv:8182/analyze/50%25"},
		{"analyze", "kas?", "http://api.tezaurs.lv:8182/analyze/kas%3F"},
	}

	for _, tt := range tests {
		if got := p.Endpoint(tt.op, tt.arg); got != tt.want {
			t.Errorf("Endpoint(%q, %q) = %q, want %q", tt.op, tt.arg, got, tt.want)
		}
	}
}

func TestProvider_StatusErrorWithEnvelope(t *testing.T) {
	t.Parallel()

	srv := tezaurstest.NewServer(t)
	srv.Raw("analyze", "jūra", http.StatusInternalServerError,
		`{"error":{"error_code":500,"error_msg":"analyzer crashed","request_params":[{"key":"word","value":"jūra"}]}}`)

	p := tezaurs.NewProviderWithURL(srv.URL, newTestLogger())
	_, err := p.Analyze(context.Background(), "jūra")
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrTransport)

	var pe *provider.Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "analyze", pe.Op)
	assert.Equal(t, http.StatusInternalServerError, pe.Status)
	require.NotNil(t, pe.Remote)
	assert.Equal(t, 500, pe.Remote.Code)
	assert.Equal(t, "analyzer crashed", pe.Remote.Message)
	assert.Equal(t, []provider.RequestParam{{Key: "word", Value: "jūra"}}, pe.Remote.RequestParams)
}

func TestProvider_StatusErrorAlternateEnvelopeKeys(t *testing.T) {
	t.Parallel()

	srv := tezaurstest.NewServer(t)
	srv.Raw("tokenize", "x", http.StatusBadRequest, `{"error":{"code":400,"message":"bad input"}}`)

	p := tezaurs.NewProviderWithURL(srv.URL, newTestLogger())
	_, err := p.Tokenize(context.Background(), "x")

	var pe *provider.Error
	require.True(t, errors.As(err, &pe))
	require.NotNil(t, pe.Remote)
	assert.Equal(t, 400, pe.Remote.Code)
	assert.Equal(t, "bad input", pe.Remote.Message)
}

func TestProvider_StatusErrorPlainBody(t *testing.T) {
	t.Parallel()

	srv := tezaurstest.NewServer(t)
	srv.Raw("analyze", "x", http.StatusBadGateway, "<html>bad gateway</html>")

	p := tezaurs.NewProviderWithURL(srv.URL, newTestLogger())
	_, err := p.Analyze(context.Background(), "x")

	var pe *provider.Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, provider.KindTransport, pe.Kind)
	assert.Equal(t, http.StatusBadGateway, pe.Status)
	assert.Nil(t, pe.Remote)
}

func TestProvider_UnregisteredRouteIsTransport(t *testing.T) {
	t.Parallel()

	srv := tezaurstest.NewServer(t)
	p := tezaurs.NewProviderWithURL(srv.URL, newTestLogger())

	_, err := p.SuitableParadigms(context.Background(), "nekas")
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrTransport)
	assert.Equal(t, provider.KindTransport, provider.KindOf(err))
}

func TestProvider_ConnectionRefused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p := tezaurs.NewProviderWithURL(url, newTestLogger())
	_, err := p.Analyze(context.Background(), "jūra")
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrTransport)
}

func TestProvider_ContextDeadline(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	p := tezaurs.NewProviderWithURL(srv.URL, newTestLogger())
	_, err := p.Tokenize(ctx, "es")
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrTransport)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestProvider_BodyTooLarge(t *testing.T) {
	t.Parallel()

	srv := tezaurstest.NewServer(t)
	srv.Normalize("liels", strings.Repeat("a", 64))

	p := tezaurs.NewProvider(config.TezaursConfig{
		BaseURL:      srv.URL,
		Timeout:      time.Second,
		MaxBodyBytes: 32,
	}, newTestLogger())

	_, err := p.NormalizePhrase(context.Background(), "liels")
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrTransport)
	assert.Contains(t, err.Error(), "exceeds 32 bytes")
}

func TestProvider_DecodeErrorCarriesOp(t *testing.T) {
	t.Parallel()

	srv := tezaurstest.NewServer(t)
	srv.Raw("tokenize", "es", http.StatusOK, `[{"Vārds": "es", "Marķējums": 5, "Pamatforma": "es"}]`)

	p := tezaurs.NewProviderWithURL(srv.URL, newTestLogger())
	_, err := p.Tokenize(context.Background(), "es")

	var pe *provider.Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, provider.KindDecode, pe.Kind)
	assert.Equal(t, "tokenize", pe.Op)
	assert.Equal(t, "Marķējums", pe.Field)
}

func TestProvider_MalformedBody(t *testing.T) {
	t.Parallel()

	srv := tezaurstest.NewServer(t)
	srv.Raw("inflect_phrase", "jūra", http.StatusOK, `{"Nominatīvs": `)

	p := tezaurs.NewProviderWithURL(srv.URL, newTestLogger())
	_, err := p.InflectPhrase(context.Background(), "jūra")
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrMalformedPayload)
	assert.Equal(t, provider.KindMalformedPayload, provider.KindOf(err))
}

func TestProvider_SendsHeaders(t *testing.T) {
	t.Parallel()

	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	p := tezaurs.NewProvider(config.TezaursConfig{BaseURL: srv.URL, UserAgent: "tezaurs-gateway/test"}, newTestLogger())
	words, err := p.Analyze(context.Background(), "x")
	require.NoError(t, err)
	assert.Empty(t, words)
	assert.Equal(t, "tezaurs-gateway/test", gotUA)
	assert.Equal(t, "application/json", gotAccept)
}
