package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/adresponse/adresponse/internal/domain"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultChatModel is the OpenAI model used for stage generation
const DefaultChatModel = openai.GPT4oMini

// ErrNoCompletion is returned when the API responds without choices
var ErrNoCompletion = errors.New("no completion returned")

// ChatAPI defines the interface for chat completion (for testing)
type ChatAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIGenerator generates stage documents with an OpenAI chat model.
// Each stage asks for a JSON object matching the corresponding domain
// document and unmarshals the reply directly.
type OpenAIGenerator struct {
	api   ChatAPI
	model string
}

// NewOpenAIGenerator creates an OpenAIGenerator using the default model.
func NewOpenAIGenerator(apiKey string) *OpenAIGenerator {
	return &OpenAIGenerator{
		api:   openai.NewClient(apiKey),
		model: DefaultChatModel,
	}
}

// NewOpenAIGeneratorWithAPI creates an OpenAIGenerator with a custom
// chat API (for testing).
func NewOpenAIGeneratorWithAPI(api ChatAPI, model string) *OpenAIGenerator {
	if model == "" {
		model = DefaultChatModel
	}
	return &OpenAIGenerator{api: api, model: model}
}

func (g *OpenAIGenerator) complete(ctx context.Context, prompt string, out interface{}) error {
	resp, err := g.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a media planning assistant for an advertising agency. Reply with a single JSON object and nothing else.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return ErrNoCompletion
	}

	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), out); err != nil {
		return fmt.Errorf("failed to decode completion: %w", err)
	}

	return nil
}

func rfpContext(rfp *domain.RFP) string {
	return fmt.Sprintf(
		"RFP %q from agency %q for advertiser %q. Campaign type: %s. Budget range: %s. Due date: %s.",
		rfp.Name, rfp.AgencyName, rfp.AdvertiserClientName,
		rfp.CampaignType, rfp.BudgetRange, rfp.DueDate.Format(domain.DueDateFormat))
}

// Analyze asks the model for an analysis document.
func (g *OpenAIGenerator) Analyze(ctx context.Context, rfp *domain.RFP) (*domain.Analysis, error) {
	prompt := rfpContext(rfp) + "\n\nAnalyze this RFP. Respond with JSON keys: " +
		`"status" (string), "insights" (array of strings), "recommendations" (array of strings), ` +
		`"risk_factors" (array of strings), "confidence_score" (number between 0 and 1).`

	var analysis domain.Analysis
	if err := g.complete(ctx, prompt, &analysis); err != nil {
		return nil, err
	}
	if analysis.Status == "" {
		analysis.Status = "completed"
	}
	return &analysis, nil
}

// ExtractPlacements asks the model for a media placement breakdown.
func (g *OpenAIGenerator) ExtractPlacements(ctx context.Context, rfp *domain.RFP) ([]domain.MediaPlacement, error) {
	prompt := rfpContext(rfp) + "\n\nExtract the media placements for this RFP. Respond with JSON keys: " +
		`"placements" (array of objects with string keys "channel", "budget", "duration").`

	var out struct {
		Placements []domain.MediaPlacement `json:"placements"`
	}
	if err := g.complete(ctx, prompt, &out); err != nil {
		return nil, err
	}
	return out.Placements, nil
}

// GenerateProposal asks the model for a proposal document.
func (g *OpenAIGenerator) GenerateProposal(ctx context.Context, rfp *domain.RFP) (*domain.Proposal, error) {
	prompt := rfpContext(rfp) + "\n\nDraft a media proposal for this RFP. Respond with JSON keys: " +
		`"title", "executive_summary", "strategy", "timeline" (strings), ` +
		`"budget_breakdown" (object of channel to percentage string), "kpis" (array of strings).`

	var proposal domain.Proposal
	if err := g.complete(ctx, prompt, &proposal); err != nil {
		return nil, err
	}
	return &proposal, nil
}

// QualityCheck asks the model to score the RFP's proposal.
func (g *OpenAIGenerator) QualityCheck(ctx context.Context, rfp *domain.RFP) (*domain.QualityCheck, error) {
	proposalJSON, err := json.Marshal(rfp.Proposal)
	if err != nil {
		return nil, fmt.Errorf("failed to encode proposal: %w", err)
	}

	prompt := rfpContext(rfp) + "\n\nProposal under review:\n" + string(proposalJSON) +
		"\n\nScore this proposal. Respond with JSON keys: " +
		`"overall_score", "completeness", "accuracy", "compliance" (numbers between 0 and 10), ` +
		`"recommendations" (array of strings).`

	var check domain.QualityCheck
	if err := g.complete(ctx, prompt, &check); err != nil {
		return nil, err
	}
	return &check, nil
}
