package kb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/instavoice/assistant/pkg/model"
	"github.com/instavoice/assistant/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"
)

const (
	// separator joins Title/Content blocks when more than one article
	// matches.
	separator = "\n\n---\n\n"

	multiResultHeader = "I found a few relevant articles in our knowledge base:"

	noResultMessage = "I couldn't find specific information about that in our knowledge base right now. Could you try rephrasing your question?"

	searchErrorMessage = "I'm sorry, I had trouble searching our knowledge base just now. Please try again in a moment."
)

// Searcher is the slice of the knowledge-base use case this tool needs.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]*model.Article, error)
}

type answerInput struct {
	Query string `json:"query"`
}

// Tool implements answer_from_company_kb.
type Tool struct {
	searcher Searcher
}

// New creates the answer_from_company_kb tool
func New(searcher Searcher) *Tool {
	return &Tool{searcher: searcher}
}

// Prompt returns additional information to be added to the system prompt
func (t *Tool) Prompt(ctx context.Context) string {
	return `When a user asks a general question about the company, its products, FAQs, or how to do something, use the answer_from_company_kb tool with the user's query. Synthesize the returned text into a helpful answer rather than reading it verbatim.`
}

// Spec returns the tool specification for Gemini function calling
func (t *Tool) Spec() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        "answer_from_company_kb",
				Description: "Searches the company knowledge base for an answer to the user's question. Use for general questions about the company, its products, FAQs, or how-to guides.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"query": {
							Type:        genai.TypeString,
							Description: "The user's question to search for in the company knowledge base",
						},
					},
					Required: []string{"query"},
				},
			},
		},
	}
}

// Execute runs the tool. Zero matches and a failed search produce
// different apologies; result order from the store is preserved.
func (t *Tool) Execute(ctx context.Context, fc genai.FunctionCall) (*genai.FunctionResponse, error) {
	logger := logging.From(ctx)

	input, err := parseInput(fc)
	if err != nil {
		return nil, err
	}

	logger.Info("answering from knowledge base", "query", input.Query)

	articles, err := t.searcher.Search(ctx, input.Query, 0)
	if err != nil {
		logger.Error("knowledge base search failed", "query", input.Query, "error", err)
		return response(fc, searchErrorMessage), nil
	}

	if len(articles) == 0 {
		logger.Warn("no knowledge base match", "query", input.Query)
		return response(fc, noResultMessage), nil
	}

	return response(fc, formatArticles(articles)), nil
}

func parseInput(fc genai.FunctionCall) (*answerInput, error) {
	raw, err := json.Marshal(fc.Args)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal function arguments")
	}

	var input answerInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, goerr.Wrap(err, "failed to parse input parameters")
	}

	return &input, nil
}

func formatArticles(articles []*model.Article) string {
	blocks := make([]string, 0, len(articles))
	for _, article := range articles {
		blocks = append(blocks, fmt.Sprintf("Title: %s\nContent: %s", article.Title, article.Content))
	}

	if len(blocks) == 1 {
		return blocks[0]
	}

	return multiResultHeader + "\n\n" + strings.Join(blocks, separator)
}

func response(fc genai.FunctionCall, result string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		Name:     fc.Name,
		Response: map[string]any{"result": result},
	}
}
