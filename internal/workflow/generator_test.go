package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/adresponse/adresponse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	openai "github.com/sashabaranov/go-openai"
)

func testRFP() *domain.RFP {
	due, _ := time.Parse(domain.DueDateFormat, "2025-04-15")
	return &domain.RFP{
		ID:                   1,
		Name:                 "Q3 Digital Media Campaign",
		AgencyName:           "MediaBuyers Agency",
		AdvertiserClientName: "TechGadgets Inc.",
		CampaignType:         "Digital Media",
		BudgetRange:          "$500K - $750K",
		DueDate:              due,
		Status:               domain.RFPStatusInProgress,
	}
}

func TestTemplateGenerator_Analyze_Deterministic(t *testing.T) {
	gen := NewTemplateGenerator()
	rfp := testRFP()

	first, err := gen.Analyze(context.Background(), rfp)
	require.NoError(t, err)
	second, err := gen.Analyze(context.Background(), rfp)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "completed", first.Status)
	assert.Equal(t, 0.87, first.ConfidenceScore)
	assert.Contains(t, first.Insights[0], "Digital Media")
	assert.Contains(t, first.Insights[3], "$500K - $750K")
}

func TestTemplateGenerator_ExtractPlacements_Deterministic(t *testing.T) {
	gen := NewTemplateGenerator()
	rfp := testRFP()

	first, err := gen.ExtractPlacements(context.Background(), rfp)
	require.NoError(t, err)
	second, err := gen.ExtractPlacements(context.Background(), rfp)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first, 3)
	assert.Equal(t, "Digital Display", first[0].Channel)
	assert.Equal(t, "$200K", first[0].Budget)
	assert.Equal(t, "8 weeks", first[0].Duration)
}

func TestTemplateGenerator_GenerateProposal_UsesRFPFields(t *testing.T) {
	gen := NewTemplateGenerator()

	proposal, err := gen.GenerateProposal(context.Background(), testRFP())
	require.NoError(t, err)

	assert.Equal(t, "Media Proposal for Q3 Digital Media Campaign", proposal.Title)
	assert.Contains(t, proposal.ExecutiveSummary, "TechGadgets Inc.")
	assert.Equal(t, "60%", proposal.BudgetBreakdown["Digital"])
	assert.Len(t, proposal.KPIs, 3)
}

func TestTemplateGenerator_GenerateProposal_FallsBackToAgency(t *testing.T) {
	gen := NewTemplateGenerator()
	rfp := testRFP()
	rfp.AdvertiserClientName = ""

	proposal, err := gen.GenerateProposal(context.Background(), rfp)
	require.NoError(t, err)
	assert.Contains(t, proposal.ExecutiveSummary, "MediaBuyers Agency")
}

func TestTemplateGenerator_QualityCheck_FixedScores(t *testing.T) {
	gen := NewTemplateGenerator()

	check, err := gen.QualityCheck(context.Background(), testRFP())
	require.NoError(t, err)

	assert.Equal(t, 8.7, check.OverallScore)
	assert.Equal(t, 9.2, check.Completeness)
	assert.Equal(t, 8.5, check.Accuracy)
	assert.Equal(t, 8.9, check.Compliance)
	assert.NotEmpty(t, check.Recommendations)
}

type MockChatAPI struct {
	mock.Mock
}

func (m *MockChatAPI) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(openai.ChatCompletionResponse), args.Error(1)
}

func chatResponse(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestOpenAIGenerator_Analyze(t *testing.T) {
	api := new(MockChatAPI)
	api.On("CreateChatCompletion", mock.Anything, mock.MatchedBy(func(req openai.ChatCompletionRequest) bool {
		return req.Model == DefaultChatModel && len(req.Messages) == 2
	})).Return(chatResponse(`{"status":"completed","insights":["a"],"recommendations":["b"],"confidence_score":0.9}`), nil)

	gen := NewOpenAIGeneratorWithAPI(api, "")
	analysis, err := gen.Analyze(context.Background(), testRFP())
	require.NoError(t, err)

	assert.Equal(t, 0.9, analysis.ConfidenceScore)
	assert.Equal(t, []string{"a"}, analysis.Insights)
	api.AssertExpectations(t)
}

func TestOpenAIGenerator_ExtractPlacements(t *testing.T) {
	api := new(MockChatAPI)
	api.On("CreateChatCompletion", mock.Anything, mock.Anything).
		Return(chatResponse(`{"placements":[{"channel":"CTV","budget":"$300K","duration":"6 weeks"}]}`), nil)

	gen := NewOpenAIGeneratorWithAPI(api, "")
	placements, err := gen.ExtractPlacements(context.Background(), testRFP())
	require.NoError(t, err)

	require.Len(t, placements, 1)
	assert.Equal(t, "CTV", placements[0].Channel)
}

func TestOpenAIGenerator_NoChoices(t *testing.T) {
	api := new(MockChatAPI)
	api.On("CreateChatCompletion", mock.Anything, mock.Anything).
		Return(openai.ChatCompletionResponse{}, nil)

	gen := NewOpenAIGeneratorWithAPI(api, "")
	_, err := gen.Analyze(context.Background(), testRFP())
	assert.ErrorIs(t, err, ErrNoCompletion)
}

func TestOpenAIGenerator_BadJSON(t *testing.T) {
	api := new(MockChatAPI)
	api.On("CreateChatCompletion", mock.Anything, mock.Anything).
		Return(chatResponse("not json"), nil)

	gen := NewOpenAIGeneratorWithAPI(api, "")
	_, err := gen.QualityCheck(context.Background(), testRFP())
	assert.Error(t, err)
}
