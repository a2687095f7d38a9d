package assistant

import (
	"context"
	_ "embed"
	"strings"

	"github.com/google/uuid"
	"github.com/instavoice/assistant/pkg/adapter"
	"github.com/instavoice/assistant/pkg/tool"
	"github.com/instavoice/assistant/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"
)

//go:embed prompt/system.md
var systemPromptRaw string

// WelcomeMessage opens every session.
const WelcomeMessage = "Welcome to InstaVoice Solutions support! I'm here to help with your account or answer questions about our services. How can I assist you today?"

// Tool call limit per turn
const maxToolIterations = 8

// Session manages one conversation between a participant and the
// assistant: history, system instructions, and the function-calling
// loop against the tool registry.
type Session struct {
	gemini   adapter.Gemini
	registry *tool.Registry

	id       string
	identity string
	contents []*genai.Content
}

// NewInput contains parameters for creating a session
type NewInput struct {
	Gemini   adapter.Gemini
	Registry *tool.Registry

	// Identity is the opaque user ID of the participant.
	Identity string

	// SessionID names the conversation; generated when empty.
	SessionID string
}

func New(input NewInput) *Session {
	id := input.SessionID
	if id == "" {
		id = uuid.New().String()
	}

	return &Session{
		gemini:   input.Gemini,
		registry: input.Registry,
		id:       id,
		identity: input.Identity,
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Send submits one user message and returns the assistant's reply,
// executing any tool calls the model requests along the way. Tool
// results never carry errors back to the model as failures of the
// session; a failed tool call is reported to the model as an error
// payload and the loop continues.
func (s *Session) Send(ctx context.Context, message string) (string, error) {
	ctx = tool.WithSession(ctx, tool.Session{
		Identity:  s.identity,
		SessionID: s.id,
	})
	logger := logging.From(ctx)

	s.contents = append(s.contents, genai.NewContentFromText(message, genai.RoleUser))

	systemPrompt := systemPromptRaw
	if toolPrompts := s.registry.Prompts(ctx); toolPrompts != "" {
		systemPrompt += "\n\nTool Usage:\n" + toolPrompts
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, ""),
		Tools:             s.registry.Specs(),
	}

	var reply strings.Builder

	for i := 0; i < maxToolIterations; i++ {
		resp, err := s.gemini.GenerateContent(ctx, s.contents, config)
		if err != nil {
			return "", goerr.Wrap(err, "failed to generate content")
		}

		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			break
		}

		content := resp.Candidates[0].Content
		s.contents = append(s.contents, content)

		var functionResponses []*genai.Part
		for _, part := range content.Parts {
			if part.Text != "" {
				reply.WriteString(part.Text)
			}

			if part.FunctionCall == nil {
				continue
			}

			logger.Info("executing tool", "name", part.FunctionCall.Name, "session_id", s.id)

			funcResp, execErr := s.registry.Execute(ctx, *part.FunctionCall)
			if execErr != nil {
				logger.Error("tool execution failed", "name", part.FunctionCall.Name, "error", execErr)
				funcResp = &genai.FunctionResponse{
					Name:     part.FunctionCall.Name,
					Response: map[string]any{"error": execErr.Error()},
				}
			}

			functionResponses = append(functionResponses, &genai.Part{FunctionResponse: funcResp})
		}

		if len(functionResponses) == 0 {
			break
		}

		// Feed tool results back and let the model continue the turn.
		s.contents = append(s.contents, &genai.Content{
			Role:  genai.RoleUser,
			Parts: functionResponses,
		})
		reply.Reset()
	}

	return strings.TrimSpace(reply.String()), nil
}
