// Command server runs the Tezaurs gateway: a REST front end for the Tezaurs
// morphology service with an optional PostgreSQL lookup journal.
//
// Flags:
//
//	-issue-token NAME  print a bearer token for client NAME and exit
//
// Configuration comes from CONFIG_PATH (default ./config.yaml) and the
// environment. Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/tezaurs-gateway/internal/app"
	"github.com/heartmarshall/tezaurs-gateway/internal/auth"
	"github.com/heartmarshall/tezaurs-gateway/internal/config"
)

func main() {
	issueToken := flag.String("issue-token", "", "print a bearer token for the named client and exit")
	flag.Parse()

	if *issueToken != "" {
		if err := printToken(*issueToken); err != nil {
			log.Fatalf("issue token: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("application stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func printToken(client string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.Auth.AuthEnabled() {
		return fmt.Errorf("auth.jwt_secret is not set")
	}

	token, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL).
		GenerateServiceToken(client)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
