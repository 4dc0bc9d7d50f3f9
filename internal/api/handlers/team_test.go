package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adresponse/adresponse/internal/domain"
)

type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) List(ctx context.Context) ([]*domain.TeamMember, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TeamMember), args.Error(1)
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id int) (*domain.TeamMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}

func TestTeamHandler_List(t *testing.T) {
	mockRepo := new(MockTeamRepository)
	handler := NewTeamHandler(mockRepo)

	mockRepo.On("List", mock.Anything).Return([]*domain.TeamMember{
		{ID: 1, Name: "John Doe", Role: "Account Director", Email: "john@adresponse.io"},
		{ID: 2, Name: "Amanda Smith", Role: "Media Strategist", Email: "amanda@adresponse.io"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/team/members", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	members := body["members"].([]interface{})
	require.Len(t, members, 2)
	first := members[0].(map[string]interface{})
	assert.Equal(t, "John Doe", first["name"])
}

func TestTeamHandler_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		handler := NewTeamHandler(mockRepo)

		mockRepo.On("GetByID", mock.Anything, 1).Return(&domain.TeamMember{
			ID: 1, Name: "John Doe", Role: "Account Director", Email: "john@adresponse.io",
		}, nil)

		req := requestWithID(http.MethodGet, "/api/team/members/1", nil, map[string]string{"id": "1"})
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		member := body["member"].(map[string]interface{})
		assert.Equal(t, "John Doe", member["name"])
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		handler := NewTeamHandler(mockRepo)

		mockRepo.On("GetByID", mock.Anything, 99).Return(nil, domain.ErrTeamMemberNotFound)

		req := requestWithID(http.MethodGet, "/api/team/members/99", nil, map[string]string{"id": "99"})
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
