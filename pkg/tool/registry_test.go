package tool_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"google.golang.org/genai"

	"github.com/instavoice/assistant/pkg/tool"
)

type stubTool struct {
	name   string
	prompt string
	calls  int
}

func (s *stubTool) Spec() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        s.name,
				Description: "stub",
				Parameters:  &genai.Schema{Type: genai.TypeObject},
			},
		},
	}
}

func (s *stubTool) Execute(ctx context.Context, fc genai.FunctionCall) (*genai.FunctionResponse, error) {
	s.calls++
	return &genai.FunctionResponse{
		Name:     fc.Name,
		Response: map[string]any{"result": "ok from " + s.name},
	}, nil
}

func (s *stubTool) Prompt(ctx context.Context) string {
	return s.prompt
}

func TestRegistryDispatch(t *testing.T) {
	first := &stubTool{name: "first_tool", prompt: "Use first_tool for first things."}
	second := &stubTool{name: "second_tool"}
	registry := tool.New(first, second)

	gt.Equal(t, len(registry.Specs()), 2)
	gt.Equal(t, registry.Names(), []string{"first_tool", "second_tool"})
	gt.Equal(t, len(registry.Declarations()), 2)

	resp, err := registry.Execute(context.Background(), genai.FunctionCall{Name: "second_tool"})
	gt.NoError(t, err)
	gt.Equal(t, resp.Response["result"], "ok from second_tool")
	gt.Equal(t, first.calls, 0)
	gt.Equal(t, second.calls, 1)
}

func TestRegistryUnknownTool(t *testing.T) {
	registry := tool.New(&stubTool{name: "only_tool"})

	_, err := registry.Execute(context.Background(), genai.FunctionCall{Name: "missing_tool"})
	gt.Error(t, err)
}

func TestRegistryPrompts(t *testing.T) {
	registry := tool.New(
		&stubTool{name: "a_tool", prompt: "Prompt A."},
		&stubTool{name: "b_tool"},
		&stubTool{name: "c_tool", prompt: "Prompt C."},
	)

	gt.Equal(t, registry.Prompts(context.Background()), "Prompt A.\n\nPrompt C.")
}
