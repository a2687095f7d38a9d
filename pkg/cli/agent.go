package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/instavoice/assistant/pkg/repository"
	"github.com/instavoice/assistant/pkg/usecase/assistant"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func agentCommand() *cli.Command {
	var (
		cfg       config
		userID    string
		sessionID string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "user-id",
			Aliases:     []string{"u"},
			Usage:       "Opaque user ID of the participant",
			Sources:     cli.EnvVars("ASSISTANT_USER_ID"),
			Destination: &userID,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "session-id",
			Usage:       "Session ID (generated when empty)",
			Sources:     cli.EnvVars("ASSISTANT_SESSION_ID"),
			Destination: &sessionID,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, geminiFlags(&cfg)...)

	return &cli.Command{
		Name:  "agent",
		Usage: "Interactive assistant session for a user",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, logger := cfg.newLogger(ctx)

			// The conversation model is mandatory; the store degrades.
			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize gemini")
			}

			var repo repository.Repository
			if r, repoErr := cfg.newRepository(ctx); repoErr != nil {
				logger.Error("repository unavailable, tools will report store errors", "error", repoErr)
			} else {
				repo = r
				defer repo.Close()
			}

			session := assistant.New(assistant.NewInput{
				Gemini:    gemini,
				Registry:  newRegistry(repo, gemini),
				Identity:  userID,
				SessionID: sessionID,
			})

			logger.Info("agent session starting", "user_id", userID, "session_id", session.ID())

			rl, err := readline.New("> ")
			if err != nil {
				return goerr.Wrap(err, "failed to initialize readline")
			}
			defer rl.Close()

			fmt.Fprintf(c.Root().Writer, "%s\n(type 'exit' to quit)\n", assistant.WelcomeMessage)

			for {
				line, err := rl.Readline()
				if err == readline.ErrInterrupt {
					continue
				}
				if err == io.EOF {
					break
				}
				if err != nil {
					return goerr.Wrap(err, "failed to read input")
				}

				message := strings.TrimSpace(line)
				if message == "exit" {
					break
				}
				if message == "" {
					continue
				}

				sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				sp.Start()
				reply, err := session.Send(ctx, message)
				sp.Stop()

				if err != nil {
					logger.Error("failed to generate reply", "error", err)
					fmt.Fprintf(c.Root().Writer, "Sorry, something went wrong. Please try again.\n")
					continue
				}

				fmt.Fprintf(c.Root().Writer, "%s\n", reply)
			}

			fmt.Fprintf(c.Root().Writer, "\nSession %s ended\n", session.ID())
			return nil
		},
	}
}
