package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAIProvider generates game content via chat completions in JSON mode.
type OpenAIProvider struct {
	apiKey string
	model  string
	client *openai.Client
}

func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{apiKey: strings.TrimSpace(apiKey), model: strings.TrimSpace(model)}
}

var ErrOpenAINoAPIKey = fmt.Errorf("openai: api key not configured")

const callTimeout = 8 * time.Second

func (p *OpenAIProvider) ensureClient() error {
	if p.apiKey == "" {
		return ErrOpenAINoAPIKey
	}
	if p.client == nil {
		c := openai.NewClient(option.WithAPIKey(p.apiKey))
		p.client = &c
	}
	return nil
}

func (p *OpenAIProvider) SetAPIKey(key string) {
	p.apiKey = strings.TrimSpace(key)
	p.client = nil
}

func (p *OpenAIProvider) SetModel(model string) {
	p.model = strings.TrimSpace(model)
}

func (p *OpenAIProvider) GenerateCustomer(ctx context.Context) (CustomerSpec, error) {
	if err := p.ensureClient(); err != nil {
		return CustomerSpec{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	system := "You are creating customer profiles for a restaurant game. Return ONLY valid JSON with keys: name (string), personality_traits (array of two strings), dietary_restrictions (array of 1-2 strings), patience_level (integer 1-10), tip_tendency (number 0-0.5)."
	user := `Generate a unique restaurant customer profile with:
1. Two personality traits
2. 1-2 dietary restrictions
3. A patience level (1-10)
4. A tip tendency (0-0.5)`

	text, err := p.call(ctx, system, user)
	if err != nil {
		return CustomerSpec{}, err
	}
	var out CustomerSpec
	if err := decodeJSON(text, &out); err != nil {
		return CustomerSpec{}, fmt.Errorf("openai: parse customer: %w", err)
	}
	out.PatienceLevel = clampInt(out.PatienceLevel, 1, 10)
	out.TipTendency = clampFloat(out.TipTendency, 0, 0.5)
	return out, nil
}

func (p *OpenAIProvider) GenerateMenu(ctx context.Context, req MenuRequest) ([]MenuItemSpec, error) {
	if err := p.ensureClient(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	count := req.Count
	if count <= 0 {
		count = 3
	}
	system := "You are a creative chef who specializes in dietary restrictions. You only respond with valid JSON."
	user := fmt.Sprintf(`Generate %d creative food items that would be safe for someone with these dietary restrictions: %s.
For each item, provide:
1. A creative name
2. A brief description
3. A reasonable price
4. Preparation time in minutes

Return ONLY a valid JSON object in this exact format:
{"items": [{"name": "item name", "description": "brief description", "price": 0.00, "preparation_time": 0}]}`,
		count, strings.Join(req.Restrictions, ", "))

	text, err := p.call(ctx, system, user)
	if err != nil {
		return nil, err
	}
	var out struct {
		Items []MenuItemSpec `json:"items"`
	}
	if err := decodeJSON(text, &out); err != nil {
		return nil, fmt.Errorf("openai: parse menu: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("openai: menu response had no items")
	}
	return out.Items, nil
}

func (p *OpenAIProvider) GenerateConsequence(ctx context.Context, req ConsequenceRequest) (ConsequenceSpec, error) {
	if err := p.ensureClient(); err != nil {
		return ConsequenceSpec{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	system := "You are a creative game designer specializing in humorous consequences. You only respond with valid JSON."
	user := fmt.Sprintf(`Generate a creative and humorous consequence for serving food that violates a %s dietary restriction.
Include:
1. A funny description of what happens
2. A visual effect for the game
3. A sound effect suggestion
4. A monetary penalty
5. A score impact

Return ONLY a valid JSON object in this exact format:
{"consequence": {"description": "funny description here", "visual_effect": "effect name", "sound_effect": "sound name", "money_impact": -50, "score_impact": -100, "reputation_impact": -5}}`,
		req.Violation)

	text, err := p.call(ctx, system, user)
	if err != nil {
		return ConsequenceSpec{}, err
	}
	var out struct {
		Consequence ConsequenceSpec `json:"consequence"`
	}
	if err := decodeJSON(text, &out); err != nil {
		return ConsequenceSpec{}, fmt.Errorf("openai: parse consequence: %w", err)
	}
	if out.Consequence.Description == "" {
		return ConsequenceSpec{}, fmt.Errorf("openai: consequence response empty")
	}
	return out.Consequence, nil
}

func (p *OpenAIProvider) call(ctx context.Context, system, user string) (string, error) {
	model := p.model
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		MaxTokens: openai.Int(600),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// decodeJSON tolerates the code fences some models wrap around JSON output.
func decodeJSON(text string, v any) error {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	return json.Unmarshal([]byte(strings.TrimSpace(text)), v)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
