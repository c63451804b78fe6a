package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/forkplan/forkplan-server/internal/domain"
)

func (s *Server) registerPreferenceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPreferences",
		Method:      http.MethodGet,
		Path:        "/api/v1/preferences",
		Summary:     "List preferences",
		Description: "Returns the household's recipe preferences",
		Tags:        []string{"Preferences"},
	}, s.handleListPreferences)

	huma.Register(s.api, huma.Operation{
		OperationID: "setPreference",
		Method:      http.MethodPut,
		Path:        "/api/v1/preferences/{id}",
		Summary:     "Set preference",
		Description: "Marks a recipe as favorite or dislike",
		Tags:        []string{"Preferences"},
	}, s.handleSetPreference)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearPreference",
		Method:      http.MethodDelete,
		Path:        "/api/v1/preferences/{id}",
		Summary:     "Clear preference",
		Description: "Removes any preference for a recipe",
		Tags:        []string{"Preferences"},
	}, s.handleClearPreference)
}

// === DTOs ===

// PreferenceResponse contains one preference in API responses.
type PreferenceResponse struct {
	RecipeID  string    `json:"recipe_id" doc:"Recipe ID"`
	Kind      string    `json:"kind" doc:"favorite or dislike"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

// ListPreferencesResponse contains all preferences.
type ListPreferencesResponse struct {
	Preferences []PreferenceResponse `json:"preferences" doc:"Recipe preferences"`
}

// ListPreferencesOutput wraps the preference list for Huma.
type ListPreferencesOutput struct {
	Body ListPreferencesResponse
}

// SetPreferenceRequest is the request body for setting a preference.
type SetPreferenceRequest struct {
	Kind string `json:"kind" validate:"required,oneof=favorite dislike" doc:"favorite or dislike"`
}

// SetPreferenceInput wraps the set preference request for Huma.
type SetPreferenceInput struct {
	ID   string `path:"id" doc:"Recipe ID"`
	Body SetPreferenceRequest
}

// PreferenceOutput wraps a single preference for Huma.
type PreferenceOutput struct {
	Body PreferenceResponse
}

// === Handlers ===

func (s *Server) handleListPreferences(ctx context.Context, _ *struct{}) (*ListPreferencesOutput, error) {
	prefs, err := s.services.Preference.ListPreferences(ctx, s.householdUser)
	if err != nil {
		return nil, err
	}

	resp := make([]PreferenceResponse, len(prefs))
	for i, p := range prefs {
		resp[i] = PreferenceResponse{
			RecipeID:  p.RecipeID,
			Kind:      string(p.Kind),
			UpdatedAt: p.UpdatedAt,
		}
	}
	return &ListPreferencesOutput{Body: ListPreferencesResponse{Preferences: resp}}, nil
}

func (s *Server) handleSetPreference(ctx context.Context, input *SetPreferenceInput) (*PreferenceOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	pref, err := s.services.Preference.SetPreference(ctx, s.householdUser, input.ID, domain.PreferenceKind(input.Body.Kind))
	if err != nil {
		return nil, err
	}
	return &PreferenceOutput{
		Body: PreferenceResponse{
			RecipeID:  pref.RecipeID,
			Kind:      string(pref.Kind),
			UpdatedAt: pref.UpdatedAt,
		},
	}, nil
}

func (s *Server) handleClearPreference(ctx context.Context, input *IDInput) (*MessageOutput, error) {
	if err := s.services.Preference.ClearPreference(ctx, s.householdUser, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Preference cleared"}}, nil
}
