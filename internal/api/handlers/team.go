package handlers

import (
	"context"
	"net/http"

	"github.com/adresponse/adresponse/internal/api"
	"github.com/adresponse/adresponse/internal/domain"
)

// TeamRepository is the read surface of the team member store. The
// handler talks to the repository directly; there is no business
// logic between them.
type TeamRepository interface {
	List(ctx context.Context) ([]*domain.TeamMember, error)
	GetByID(ctx context.Context, id int) (*domain.TeamMember, error)
}

type TeamHandler struct {
	repo TeamRepository
}

func NewTeamHandler(repo TeamRepository) *TeamHandler {
	return &TeamHandler{repo: repo}
}

type TeamMemberResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

func teamMemberToResponse(m *domain.TeamMember) *TeamMemberResponse {
	return &TeamMemberResponse{
		ID:    m.ID,
		Name:  m.Name,
		Role:  m.Role,
		Email: m.Email,
	}
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.repo.List(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]*TeamMemberResponse, len(members))
	for i, m := range members {
		responses[i] = teamMemberToResponse(m)
	}

	api.Success(w, http.StatusOK, api.Payload{"members": responses})
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		api.Error(w, http.StatusBadRequest, "invalid team member id")
		return
	}

	member, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, api.Payload{"member": teamMemberToResponse(member)})
}
