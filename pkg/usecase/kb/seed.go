package kb

import (
	"context"
	"os"

	"github.com/instavoice/assistant/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// SeedArticle is one entry of a seeding corpus.
type SeedArticle struct {
	Title    string            `yaml:"title"`
	Content  string            `yaml:"content"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// SeedResult accounts for a finished seeding run.
type SeedResult struct {
	Succeeded int
	Failed    int
}

// SampleArticles is the built-in seeding corpus used when no article
// file is given.
var SampleArticles = []SeedArticle{
	{
		Title:   "How to Reset Your Password",
		Content: "If you've forgotten your password, you can reset it by visiting our login page and clicking the 'Forgot Password' link. You will then receive an email with further instructions. Please check your spam folder if you don't see it within a few minutes.",
	},
	{
		Title:   "Understanding Your Subscription Tiers",
		Content: "We offer three subscription tiers: Basic, Premium, and Enterprise. The Basic tier is free and includes core features. The Premium tier adds advanced analytics and priority support. The Enterprise tier provides custom solutions and dedicated account management. You can find detailed feature comparisons on our pricing page.",
	},
	{
		Title:   "Integrating with Third-Party Services",
		Content: "Our platform supports integration with a variety of third-party services through our API and dedicated connectors. To integrate a service, go to the 'Integrations' section in your account settings. You will need API keys from the third-party service. Detailed guides for each supported integration are available in our help center.",
	},
	{
		Title:   "Troubleshooting Common Login Issues",
		Content: "If you're having trouble logging in, first ensure your email and password are correct. Check for typos and make sure your Caps Lock key is off. If you've recently reset your password, try using the new one. Clearing your browser cache and cookies can also resolve some login problems. If issues persist, contact support with the error message you are receiving.",
	},
}

// LoadSeedFile reads a YAML list of seed articles.
func LoadSeedFile(path string) ([]SeedArticle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read seed file", goerr.V("path", path))
	}

	var articles []SeedArticle
	if err := yaml.Unmarshal(raw, &articles); err != nil {
		return nil, goerr.Wrap(err, "failed to parse seed file", goerr.V("path", path))
	}

	return articles, nil
}

// Seed stores each article in turn, continuing past individual
// failures.
func (u *UseCase) Seed(ctx context.Context, articles []SeedArticle) *SeedResult {
	logger := logging.From(ctx)
	result := &SeedResult{}

	for i, article := range articles {
		logger.Info("seeding article", "index", i+1, "total", len(articles), "title", article.Title)
		if u.Store(ctx, article.Title, article.Content, article.Metadata) {
			result.Succeeded++
		} else {
			logger.Warn("failed to seed article", "title", article.Title)
			result.Failed++
		}
	}

	logger.Info("knowledge base seeding complete", "succeeded", result.Succeeded, "failed", result.Failed)
	return result
}
