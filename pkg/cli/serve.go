package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/instavoice/assistant/pkg/service/token"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var cfg config

	flags := tokenFlags(&cfg)
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "serve",
		Usage: "Run the LiveKit token issuance service",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, logger := cfg.newLogger(ctx)

			// Verification degrades per request; signing keys do not.
			var verifier token.Verifier
			if v, err := token.NewFirebaseVerifier(ctx, cfg.firebaseCredentials); err != nil {
				logger.Error("firebase verifier unavailable, token requests will fail", "error", err)
			} else {
				verifier = v
			}

			svc, err := token.NewService(token.Config{
				Addr:      cfg.addr,
				APIKey:    cfg.livekitAPIKey,
				APISecret: cfg.livekitAPISecret,
			}, verifier)
			if err != nil {
				return goerr.Wrap(err, "failed to configure token service")
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("token service listening", "addr", cfg.addr)
				errCh <- svc.Listen()
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return goerr.Wrap(err, "token service failed")
				}
				return nil
			case <-ctx.Done():
				logger.Info("shutting down token service")
				return svc.Shutdown()
			}
		},
	}
}
