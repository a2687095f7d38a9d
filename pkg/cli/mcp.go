package cli

import (
	"context"

	"github.com/instavoice/assistant/pkg/tool"
	"github.com/m-mizutani/goerr/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/urfave/cli/v3"

	mcpservice "github.com/instavoice/assistant/pkg/service/mcp"
)

func mcpCommand() *cli.Command {
	var (
		cfg       config
		userID    string
		sessionID string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "user-id",
			Usage:       "User identity bound to tool calls",
			Sources:     cli.EnvVars("ASSISTANT_USER_ID"),
			Destination: &userID,
		},
		&cli.StringFlag{
			Name:        "session-id",
			Usage:       "Session identifier bound to tool calls",
			Sources:     cli.EnvVars("ASSISTANT_SESSION_ID"),
			Destination: &sessionID,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, geminiFlags(&cfg)...)

	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the assistant tools over MCP on stdio",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, logger := cfg.newLogger(ctx)

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				logger.Error("failed to initialize repository, tools run degraded", "error", err)
				repo = nil
			}
			if repo != nil {
				defer repo.Close()
			}

			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				logger.Error("failed to initialize gemini, knowledge search runs degraded", "error", err)
				gemini = nil
			}

			registry := newRegistry(repo, gemini)
			server, err := mcpservice.NewServer(registry, version)
			if err != nil {
				return goerr.Wrap(err, "failed to build MCP server")
			}

			ctx = tool.WithSession(ctx, tool.Session{
				Identity:  userID,
				SessionID: sessionID,
			})

			logger.Info("starting MCP server on stdio", "tools", registry.Names())
			if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
				return goerr.Wrap(err, "MCP server exited")
			}
			return nil
		},
	}
}
