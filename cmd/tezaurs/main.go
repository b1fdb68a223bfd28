// Command tezaurs queries the Tezaurs morphology service from the shell and
// prints the decoded result as indented JSON.
//
// Usage:
//
//	tezaurs -op analyze|tokenize|normalize|paradigms|inflect [-base-url URL] [-timeout D] [-v] text...
//
// The remaining arguments are joined with spaces into the word or phrase.
// TEZAURS_* environment variables supply defaults for the flags.
// Exit codes: 0 = success, 1 = lookup failed, 2 = usage error.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/heartmarshall/tezaurs-gateway/internal/adapter/provider/tezaurs"
	"github.com/heartmarshall/tezaurs-gateway/internal/app"
	"github.com/heartmarshall/tezaurs-gateway/internal/config"
	"github.com/heartmarshall/tezaurs-gateway/internal/domain"
	"github.com/heartmarshall/tezaurs-gateway/internal/provider"
	"github.com/heartmarshall/tezaurs-gateway/internal/service/morphology"
)

var ops = map[string]func(ctx context.Context, svc *morphology.Service, text string) (any, error){
	"analyze": func(ctx context.Context, svc *morphology.Service, text string) (any, error) {
		return svc.Analyze(ctx, text)
	},
	"tokenize": func(ctx context.Context, svc *morphology.Service, text string) (any, error) {
		return svc.Tokenize(ctx, text)
	},
	"normalize": func(ctx context.Context, svc *morphology.Service, text string) (any, error) {
		return svc.NormalizePhrase(ctx, text)
	},
	"paradigms": func(ctx context.Context, svc *morphology.Service, text string) (any, error) {
		return svc.SuitableParadigms(ctx, text)
	},
	"inflect": func(ctx context.Context, svc *morphology.Service, text string) (any, error) {
		return svc.InflectPhrase(ctx, text)
	},
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("tezaurs", flag.ContinueOnError)
	op := fs.String("op", "analyze", "operation: analyze, tokenize, normalize, paradigms or inflect")
	baseURL := fs.String("base-url", "", "service base URL (default $TEZAURS_BASE_URL or the public service)")
	timeout := fs.Duration("timeout", 0, "request timeout (default $TEZAURS_TIMEOUT or 10s)")
	verbose := fs.Bool("v", false, "log requests at debug level")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	call, ok := ops[*op]
	if !ok || fs.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: tezaurs -op analyze|tokenize|normalize|paradigms|inflect [flags] text...\n")
		fs.PrintDefaults()
		return 2
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger := app.NewLogger(config.LogConfig{Level: level, Format: "text"})

	var cfg config.TezaursConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		logger.Error("read environment", slog.String("error", err.Error()))
		return 2
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = app.UserAgent()
	}

	svc := morphology.NewService(logger, tezaurs.NewProvider(cfg, logger), nil, 1)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout+5*time.Second)
	defer cancel()

	result, err := call(ctx, svc, strings.Join(fs.Args(), " "))
	if err != nil {
		logger.Error("lookup failed",
			slog.String("op", *op),
			slog.String("kind", errorKind(err)),
			slog.String("error", err.Error()),
		)
		return 1
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		logger.Error("write result", slog.String("error", err.Error()))
		return 1
	}
	return 0
}

func errorKind(err error) string {
	if errors.Is(err, domain.ErrValidation) {
		return "validation"
	}
	if k := provider.KindOf(err); k != 0 {
		return k.String()
	}
	return "unknown"
}
