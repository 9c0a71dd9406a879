package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	appcfg "github.com/gracepath/core/internal/config"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
	jetopenai "go.jetify.com/ai/provider/openai"
)

const (
	defaultOpenAIModel     = "gpt-4o-mini"
	defaultAnthropicModel  = "claude-haiku-4-5-20251001"
	defaultOpenRouterModel = "openai/gpt-4o-mini"
	defaultOpenRouterBase  = "https://openrouter.ai/api/v1"
	defaultMaxOutputTokens = 600
	maxErrorBodyLen        = 300
)

var (
	ErrMissingAPIKey = errors.New("AI provider api key is empty")
	ErrEmptyResponse = errors.New("empty response from AI")
)

func isOpenAICompatibleProviderType(raw string) bool {
	t := normalizeProviderType(raw)
	return t == "openai-compatible" || t == "openaicompatible"
}

func isAnthropicProviderType(raw string) bool {
	return normalizeProviderType(raw) == "anthropic"
}

func isOpenRouterProviderType(raw string) bool {
	return normalizeProviderType(raw) == "openrouter"
}

func normalizeProviderType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	t = strings.ReplaceAll(t, " ", "")
	return t
}

// NewProvider builds the provider described by cfg. A provider without an API
// key is still returned; every call to it fails, so the chain moves on.
func NewProvider(cfg appcfg.AIProvider, httpClient *http.Client) (Provider, error) {
	switch t := normalizeProviderType(cfg.Type); {
	case isOpenAICompatibleProviderType(t):
		if httpClient == nil {
			httpClient = http.DefaultClient
		}
		return &compatibleProvider{cfg: cfg, client: httpClient}, nil
	case t == "" || t == "openai" || isAnthropicProviderType(t) || isOpenRouterProviderType(t):
		return newSDKProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported AI provider type %q", cfg.Type)
	}
}

// NewProviders builds every enabled provider in configured order.
func NewProviders(cfgs []appcfg.AIProvider, httpClient *http.Client) ([]Provider, error) {
	out := make([]Provider, 0, len(cfgs))
	for _, cfg := range cfgs {
		if !cfg.Enabled {
			continue
		}
		p, err := NewProvider(cfg, httpClient)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", cfg.ID, err)
		}
		out = append(out, Throttle(p, cfg.RequestsPerMinute))
	}
	return out, nil
}

// sdkProvider talks to OpenAI, Anthropic and OpenRouter through the jetify
// language model interface.
type sdkProvider struct {
	id    string
	model jetapi.LanguageModel
}

func newSDKProvider(cfg appcfg.AIProvider) (*sdkProvider, error) {
	p := &sdkProvider{id: cfg.ID}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return p, nil
	}
	model, err := buildLanguageModel(&cfg)
	if err != nil {
		return nil, err
	}
	p.model = model
	return p, nil
}

func (p *sdkProvider) ID() string { return p.id }

func (p *sdkProvider) Generate(ctx context.Context, prompt Prompt) (string, error) {
	if p.model == nil {
		return "", ErrMissingAPIKey
	}
	resp, err := jetai.GenerateText(
		ctx,
		buildAIPromptMessages(prompt.System, prompt.User),
		jetai.WithModel(p.model),
		jetai.WithMaxOutputTokens(maxTokens(prompt)),
	)
	if err != nil {
		return "", err
	}
	return extractTextFromAIResponse(resp)
}

// compatibleProvider calls any server exposing /v1/chat/completions.
type compatibleProvider struct {
	cfg    appcfg.AIProvider
	client *http.Client
}

func (p *compatibleProvider) ID() string { return p.cfg.ID }

func (p *compatibleProvider) Generate(ctx context.Context, prompt Prompt) (string, error) {
	apiKey := strings.TrimSpace(p.cfg.APIKey)
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}

	endpoint := normalizeOpenAICompatibleEndpoint(p.cfg.Endpoint)
	model := strings.TrimSpace(p.cfg.DefaultModel)
	if model == "" {
		model = defaultOpenAIModel
	}

	messages := make([]map[string]string, 0, 2)
	if strings.TrimSpace(prompt.System) != "" {
		messages = append(messages, map[string]string{
			"role":    "system",
			"content": prompt.System,
		})
	}
	messages = append(messages, map[string]string{
		"role":    "user",
		"content": prompt.User,
	})

	body, err := json.Marshal(map[string]interface{}{
		"model":      model,
		"messages":   messages,
		"max_tokens": maxTokens(prompt),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("openai-compatible error: status %d: %s", resp.StatusCode, truncateText(strings.TrimSpace(string(respBody)), maxErrorBodyLen))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}
	if result.Error != nil && strings.TrimSpace(result.Error.Message) != "" {
		return "", fmt.Errorf("openai-compatible error: %s", result.Error.Message)
	}
	if strings.TrimSpace(result.Message) != "" && len(result.Choices) == 0 {
		return "", fmt.Errorf("openai-compatible error: %s", result.Message)
	}
	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return result.Choices[0].Message.Content, nil
}

func maxTokens(prompt Prompt) int {
	if prompt.MaxTokens > 0 {
		return prompt.MaxTokens
	}
	return defaultMaxOutputTokens
}

func buildAIPromptMessages(systemPrompt, prompt string) []jetapi.Message {
	messages := make([]jetapi.Message, 0, 2)
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, &jetapi.SystemMessage{Content: systemPrompt})
	}
	messages = append(messages, &jetapi.UserMessage{Content: jetapi.ContentFromText(prompt)})
	return messages
}

func extractTextFromAIResponse(resp *jetapi.Response) (string, error) {
	if resp == nil {
		return "", ErrEmptyResponse
	}

	var full strings.Builder
	for _, block := range resp.Content {
		textBlock, ok := block.(*jetapi.TextBlock)
		if !ok || textBlock.Text == "" {
			continue
		}
		full.WriteString(textBlock.Text)
	}

	text := full.String()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func buildLanguageModel(provider *appcfg.AIProvider) (jetapi.LanguageModel, error) {
	if provider == nil {
		return nil, errors.New("AI provider is nil")
	}

	apiKey := strings.TrimSpace(provider.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	modelID := strings.TrimSpace(provider.DefaultModel)
	endpoint := strings.TrimSpace(provider.Endpoint)

	if isAnthropicProviderType(provider.Type) {
		if modelID == "" {
			modelID = defaultAnthropicModel
		}

		opts := []anthropicoption.RequestOption{
			anthropicoption.WithAPIKey(apiKey),
			anthropicoption.WithMaxRetries(0),
		}
		if endpoint != "" {
			opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
		}

		client := anthropicclient.NewClient(opts...)
		return jetanthropic.NewLanguageModel(modelID, jetanthropic.WithClient(client)), nil
	}

	if isOpenRouterProviderType(provider.Type) {
		if modelID == "" {
			modelID = defaultOpenRouterModel
		}
		if endpoint == "" {
			endpoint = defaultOpenRouterBase
		}
	}
	if modelID == "" {
		modelID = defaultOpenAIModel
	}

	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(apiKey),
		openaioption.WithMaxRetries(0),
	}
	if normalized := normalizeOpenAIBaseURL(endpoint); normalized != "" {
		opts = append(opts, openaioption.WithBaseURL(normalized))
	}

	client := openaiclient.NewClient(opts...)
	return jetopenai.NewLanguageModel(modelID, jetopenai.WithClient(client)), nil
}

func normalizeOpenAIBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(base, "/")
	}

	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") {
		if path == "" {
			path = "/v1"
		} else {
			path += "/v1"
		}
	}
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}

func normalizeOpenAICompatibleEndpoint(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return "https://api.openai.com"
	}

	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimSuffix(strings.TrimRight(base, "/"), "/v1")
	}

	parsed.Path = strings.TrimSuffix(strings.TrimRight(parsed.Path, "/"), "/v1")
	return strings.TrimRight(parsed.String(), "/")
}

func truncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
