package cli

import (
	"context"

	"github.com/instavoice/assistant/pkg/usecase/kb"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func seedCommand() *cli.Command {
	var (
		cfg  config
		file string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "YAML file of articles to seed (built-in samples when empty)",
			Sources:     cli.EnvVars("ASSISTANT_SEED_FILE"),
			Destination: &file,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, geminiFlags(&cfg)...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Populate the knowledge base with articles",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, logger := cfg.newLogger(ctx)

			articles := kb.SampleArticles
			if file != "" {
				loaded, err := kb.LoadSeedFile(file)
				if err != nil {
					return err
				}
				articles = loaded
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer repo.Close()

			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize gemini")
			}

			result := kb.New(repo, gemini).Seed(ctx, articles)
			logger.Info("seeding finished", "succeeded", result.Succeeded, "failed", result.Failed)

			if result.Failed > 0 {
				return goerr.New("some articles failed to seed",
					goerr.V("succeeded", result.Succeeded), goerr.V("failed", result.Failed))
			}
			return nil
		},
	}
}
