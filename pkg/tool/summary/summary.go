package summary

import (
	"context"
	"encoding/json"

	"github.com/instavoice/assistant/pkg/tool"
	"github.com/instavoice/assistant/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"
)

// Saver is the slice of the summary use case this tool needs.
type Saver interface {
	Save(ctx context.Context, userID, sessionID, text string) bool
}

type summarizeInput struct {
	InteractionSummary string `json:"interaction_summary"`
}

// Tool implements summarize_interaction_for_next_session.
type Tool struct {
	saver Saver
}

// New creates the summarize_interaction_for_next_session tool
func New(saver Saver) *Tool {
	return &Tool{saver: saver}
}

// Prompt returns additional information to be added to the system prompt
func (t *Tool) Prompt(ctx context.Context) string {
	return `When an interaction has reached a resolution or a significant milestone, use the summarize_interaction_for_next_session tool with a concise summary, and politely tell the user you are saving a note for next time.`
}

// Spec returns the tool specification for Gemini function calling
func (t *Tool) Spec() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        "summarize_interaction_for_next_session",
				Description: "Saves a summary of the current interaction for future reference. Call when the interaction has reached a resolution or significant milestone.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"interaction_summary": {
							Type:        genai.TypeString,
							Description: "A brief summary of the key points and outcomes of the current interaction",
						},
					},
					Required: []string{"interaction_summary"},
				},
			},
		},
	}
}

// Execute runs the tool. It always acknowledges or apologizes; the
// save outcome never raises to the agent.
func (t *Tool) Execute(ctx context.Context, fc genai.FunctionCall) (*genai.FunctionResponse, error) {
	logger := logging.From(ctx)
	session := tool.SessionFrom(ctx)

	raw, err := json.Marshal(fc.Args)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal function arguments")
	}

	var input summarizeInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, goerr.Wrap(err, "failed to parse input parameters")
	}

	logger.Info("summarizing interaction", "identity", session.Identity, "session_id", session.SessionID)

	if !t.saver.Save(ctx, session.Identity, session.SessionID, input.InteractionSummary) {
		return response(fc, "I tried to save a note, but there was an issue."), nil
	}

	return response(fc, "Okay, I've made a note of that for next time."), nil
}

func response(fc genai.FunctionCall, result string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		Name:     fc.Name,
		Response: map[string]any{"result": result},
	}
}
