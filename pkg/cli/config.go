package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/instavoice/assistant/pkg/adapter"
	"github.com/instavoice/assistant/pkg/repository"
	"github.com/instavoice/assistant/pkg/tool"
	toolaccount "github.com/instavoice/assistant/pkg/tool/account"
	toolkb "github.com/instavoice/assistant/pkg/tool/kb"
	toolsummary "github.com/instavoice/assistant/pkg/tool/summary"
	"github.com/instavoice/assistant/pkg/usecase/account"
	"github.com/instavoice/assistant/pkg/usecase/kb"
	"github.com/instavoice/assistant/pkg/usecase/summary"
	"github.com/instavoice/assistant/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// config holds configuration values
type config struct {
	logLevel  string
	logFormat string

	// Repository
	project  string
	database string

	// Gemini
	geminiLocation      string
	embeddingDimensions int64

	// Token service
	addr                string
	livekitAPIKey       string
	livekitAPISecret    string
	firebaseCredentials string
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json)",
			Value:       "console",
			Sources:     cli.EnvVars("LOG_FORMAT"),
			Destination: &cfg.logFormat,
		},
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Google Cloud project ID",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_PROJECT"),
			Destination: &cfg.project,
		},
		&cli.StringFlag{
			Name:        "database",
			Aliases:     []string{"d"},
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Sources:     cli.EnvVars("FIRESTORE_DATABASE_ID"),
			Destination: &cfg.database,
		},
	}
}

// geminiFlags returns flags for Gemini-related configuration with destination config
func geminiFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini",
			Value:       "us-central1",
			Sources:     cli.EnvVars("GEMINI_LOCATION"),
			Destination: &cfg.geminiLocation,
		},
		&cli.IntFlag{
			Name:        "embedding-dimensions",
			Usage:       "Embedding output dimensionality (must match the vector index)",
			Value:       1536,
			Sources:     cli.EnvVars("EMBEDDING_DIMENSIONS"),
			Destination: &cfg.embeddingDimensions,
		},
	}
}

// tokenFlags returns flags for the token service with destination config
func tokenFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Listen address for the token service",
			Value:       ":8080",
			Sources:     cli.EnvVars("TOKEN_SERVICE_ADDR"),
			Destination: &cfg.addr,
		},
		&cli.StringFlag{
			Name:        "livekit-api-key",
			Usage:       "LiveKit API key",
			Sources:     cli.EnvVars("LIVEKIT_API_KEY"),
			Destination: &cfg.livekitAPIKey,
		},
		&cli.StringFlag{
			Name:        "livekit-api-secret",
			Usage:       "LiveKit API secret",
			Sources:     cli.EnvVars("LIVEKIT_API_SECRET"),
			Destination: &cfg.livekitAPISecret,
		},
		&cli.StringFlag{
			Name:        "firebase-credentials",
			Usage:       "Path to Firebase Admin SDK credentials (application default credentials when empty)",
			Sources:     cli.EnvVars("FIREBASE_ADMIN_SDK_CREDENTIALS_PATH"),
			Destination: &cfg.firebaseCredentials,
		},
	}
}

// newLogger builds the configured logger and attaches it to the context
func (cfg *config) newLogger(ctx context.Context) (context.Context, *slog.Logger) {
	logger := logging.New(cfg.logLevel, logging.Format(cfg.logFormat), os.Stderr)
	logging.SetDefault(logger)
	return logging.With(ctx, logger), logger
}

// newRepository creates a new repository instance
func (cfg *config) newRepository(ctx context.Context) (repository.Repository, error) {
	if cfg.project == "" {
		return nil, goerr.New("project is required")
	}
	if cfg.database == "" {
		return nil, goerr.New("database is required")
	}

	repo, err := repository.New(ctx, cfg.project, cfg.database)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create repository")
	}
	return repo, nil
}

// newGemini creates a new Gemini adapter instance
func (cfg *config) newGemini(ctx context.Context) (adapter.Gemini, error) {
	if cfg.project == "" {
		return nil, goerr.New("project is required")
	}

	gemini, err := adapter.NewGemini(ctx, cfg.project, cfg.geminiLocation,
		adapter.WithEmbeddingDimensions(int32(cfg.embeddingDimensions)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create gemini adapter")
	}
	return gemini, nil
}

// newRegistry wires the three assistant tools over the given handles.
// Either handle may be nil: the affected tools then answer with their
// degraded-store messages instead of crashing.
func newRegistry(repo repository.Repository, gemini adapter.Gemini) *tool.Registry {
	return tool.New(
		toolaccount.New(account.New(repo)),
		toolkb.New(kb.New(repo, gemini)),
		toolsummary.New(summary.New(repo)),
	)
}
