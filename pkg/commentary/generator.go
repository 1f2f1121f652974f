// Package commentary produces the short Japanese editorial comment shown at
// the bottom of a report, via a pluggable LLM provider.
package commentary

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// systemPrompt frames the model as the paper's editor. All providers share it.
const systemPrompt = "あなたは週刊技術新聞のAI編集者です。以下のデータを元に開発者の活動を振り返る所感（4〜6文、日本語、新聞コラム調の温かみある文体）を書いてください。注意事項: コンテンツ/ブログ系リポジトリ(zenn-contentなど)はブログ記事のアーカイブなのでプロダクト開発とは区別すること。プロフィールに記載のURLリンク先(Dribbble, Medium等)の活動内容は推測で書かないこと。実際のコード開発活動に焦点を当ててください。"

const maxOutputTokens = 1024

// Supported provider names.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Default models per provider, used when the caller omits one.
var defaultModels = map[string]string{
	ProviderOpenAI:    "gpt-4.1-nano",
	ProviderAnthropic: "claude-3-5-haiku-latest",
	ProviderGemini:    "gemini-2.5-flash-lite",
}

// Keys holds the per-provider API credentials. Empty keys disable a provider.
type Keys struct {
	OpenAI    string
	Anthropic string
	Gemini    string
}

// Generator dispatches a summary to the selected provider and returns the
// generated comment.
type Generator struct {
	keys       Keys
	httpClient *http.Client
	logger     *slog.Logger

	// Overridable for tests.
	openAIBaseURL    string
	anthropicBaseURL string
}

// New builds a generator with the given credentials.
func New(keys Keys, logger *slog.Logger) *Generator {
	return &Generator{
		keys:             keys,
		httpClient:       &http.Client{Timeout: 60 * time.Second},
		logger:           logger,
		openAIBaseURL:    "https://api.openai.com",
		anthropicBaseURL: "https://api.anthropic.com",
	}
}

// Generate produces a comment for the summary. An empty provider falls back
// to OpenAI; an empty model falls back to the provider's default.
func (g *Generator) Generate(ctx context.Context, provider, model, summary string) (string, error) {
	if provider == "" {
		provider = ProviderOpenAI
	}
	if model == "" {
		model = defaultModels[provider]
	}

	g.logger.Debug("generating commentary", "provider", provider, "model", model, "summary_bytes", len(summary))

	switch provider {
	case ProviderOpenAI:
		if g.keys.OpenAI == "" {
			return "", fmt.Errorf("OPENAI_API_KEY が設定されていません")
		}
		return g.callOpenAI(ctx, model, summary)
	case ProviderAnthropic:
		if g.keys.Anthropic == "" {
			return "", fmt.Errorf("ANTHROPIC_API_KEY が設定されていません")
		}
		return g.callAnthropic(ctx, model, summary)
	case ProviderGemini:
		if g.keys.Gemini == "" {
			return "", fmt.Errorf("GEMINI_API_KEY が設定されていません")
		}
		return g.callGemini(ctx, model, summary)
	default:
		return "", fmt.Errorf("unknown provider %q", provider)
	}
}
