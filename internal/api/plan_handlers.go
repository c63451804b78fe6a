package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/forkplan/forkplan-server/internal/domain"
	domainerrors "github.com/forkplan/forkplan-server/internal/errors"
	"github.com/forkplan/forkplan-server/internal/planner"
	"github.com/forkplan/forkplan-server/internal/service"
)

func (s *Server) registerPlanRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "generatePlan",
		Method:      http.MethodPost,
		Path:        "/api/v1/plans",
		Summary:     "Generate meal plan",
		Description: "Generates and persists a meal plan for the requested date range",
		Tags:        []string{"Plans"},
	}, s.handleGeneratePlan)

	huma.Register(s.api, huma.Operation{
		OperationID: "listPlans",
		Method:      http.MethodGet,
		Path:        "/api/v1/plans",
		Summary:     "List meal plans",
		Description: "Returns all meal plans, newest first",
		Tags:        []string{"Plans"},
	}, s.handleListPlans)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPlan",
		Method:      http.MethodGet,
		Path:        "/api/v1/plans/{id}",
		Summary:     "Get meal plan",
		Description: "Returns a meal plan with all of its slots",
		Tags:        []string{"Plans"},
	}, s.handleGetPlan)

	huma.Register(s.api, huma.Operation{
		OperationID: "deletePlan",
		Method:      http.MethodDelete,
		Path:        "/api/v1/plans/{id}",
		Summary:     "Delete meal plan",
		Description: "Deletes a meal plan and its slots",
		Tags:        []string{"Plans"},
	}, s.handleDeletePlan)

	huma.Register(s.api, huma.Operation{
		OperationID: "exportPlan",
		Method:      http.MethodGet,
		Path:        "/api/v1/plans/{id}/export",
		Summary:     "Export meal plan",
		Description: "Returns the plan as ordered rows with batch cook codes",
		Tags:        []string{"Plans"},
	}, s.handleExportPlan)

	huma.Register(s.api, huma.Operation{
		OperationID: "replaceSlot",
		Method:      http.MethodPost,
		Path:        "/api/v1/slots/{id}/replace",
		Summary:     "Replace slot recipe",
		Description: "Picks a different recipe for a cook slot and propagates it through its leftover run",
		Tags:        []string{"Slots"},
	}, s.handleReplaceSlot)

	huma.Register(s.api, huma.Operation{
		OperationID: "dislikeAndReplaceSlot",
		Method:      http.MethodPost,
		Path:        "/api/v1/slots/{id}/dislike-replace",
		Summary:     "Dislike and replace slot recipe",
		Description: "Records the slot's recipe as disliked, then replaces it",
		Tags:        []string{"Slots"},
	}, s.handleDislikeAndReplaceSlot)
}

// === DTOs ===

// GeneratePlanRequest is the request body for plan generation. Omitted
// optional fields fall back to the household's configured defaults.
type GeneratePlanRequest struct {
	StartDate            string   `json:"start_date" validate:"required,dateonly" doc:"First day of the plan (YYYY-MM-DD)"`
	Days                 int      `json:"days" validate:"required,min=1,max=31" doc:"Number of days to plan"`
	People               int      `json:"people,omitempty" validate:"omitempty,min=1,max=20" doc:"Household size"`
	LunchSpanDays        int      `json:"lunch_span_days,omitempty" validate:"omitempty,min=1,max=7" doc:"Batch-cooking span in days"`
	CooldownDays         *int     `json:"cooldown_days,omitempty" validate:"omitempty,min=0,max=60" doc:"Repeat-avoidance window, 0 disables"`
	PreferPantry         *bool    `json:"prefer_pantry,omitempty" doc:"Boost recipes matching pantry contents"`
	DesiredIngredientIDs []string `json:"desired_ingredient_ids,omitempty" doc:"Ingredients the household wants used"`
	DesiredHard          bool     `json:"desired_hard,omitempty" doc:"Require desired ingredients when feasible"`
	BatchMealType        string   `json:"batch_meal_type,omitempty" validate:"omitempty,mealtype" doc:"Meal type cooked in batches"`
}

// GeneratePlanInput wraps the generation request for Huma.
type GeneratePlanInput struct {
	Body GeneratePlanRequest
}

// PlanResponse contains plan header data in API responses.
type PlanResponse struct {
	ID        string    `json:"id" doc:"Plan ID"`
	StartDate string    `json:"start_date" doc:"First day of the plan"`
	Days      int       `json:"days" doc:"Number of days"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
}

// SlotResponse contains one plan slot in API responses.
type SlotResponse struct {
	ID       string `json:"id" doc:"Slot ID"`
	PlanID   string `json:"plan_id" doc:"Owning plan ID"`
	Date     string `json:"date" doc:"Slot date"`
	MealType string `json:"meal_type" doc:"breakfast, lunch, or dinner"`
	RecipeID string `json:"recipe_id,omitempty" doc:"Assigned recipe, empty when unfilled"`
	Servings int    `json:"servings" doc:"Servings cooked; 0 marks a leftover slot"`
	Leftover bool   `json:"leftover" doc:"Whether this slot consumes a previous batch"`
}

// GeneratePlanResponse is the outcome of one generation.
type GeneratePlanResponse struct {
	Plan     PlanResponse   `json:"plan" doc:"Created plan"`
	Slots    []SlotResponse `json:"slots" doc:"All plan slots in calendar order"`
	Unfilled int            `json:"unfilled" doc:"Slots that could not be filled"`
	Warning  string         `json:"warning,omitempty" doc:"Set when some slots stayed empty"`
}

// GeneratePlanOutput wraps the generation response for Huma.
type GeneratePlanOutput struct {
	Body GeneratePlanResponse
}

// ListPlansResponse contains all plans.
type ListPlansResponse struct {
	Plans []PlanResponse `json:"plans" doc:"Plans, newest first"`
}

// ListPlansOutput wraps the plan list for Huma.
type ListPlansOutput struct {
	Body ListPlansResponse
}

// GetPlanInput contains parameters for fetching a plan.
type GetPlanInput struct {
	ID string `path:"id" doc:"Plan ID"`
}

// PlanDetailResponse contains a plan and its slots.
type PlanDetailResponse struct {
	Plan  PlanResponse   `json:"plan" doc:"Plan header"`
	Slots []SlotResponse `json:"slots" doc:"Slots in calendar order"`
}

// PlanDetailOutput wraps the plan detail for Huma.
type PlanDetailOutput struct {
	Body PlanDetailResponse
}

// ExportRowResponse is one rendered export row.
type ExportRowResponse struct {
	Date       string `json:"date" doc:"Slot date"`
	MealType   string `json:"meal_type" doc:"breakfast, lunch, or dinner"`
	Code       string `json:"code,omitempty" doc:"Batch cook code such as L1"`
	RecipeID   string `json:"recipe_id,omitempty" doc:"Assigned recipe"`
	RecipeName string `json:"recipe_name,omitempty" doc:"Recipe display name"`
	Servings   int    `json:"servings" doc:"Servings cooked"`
	Leftover   bool   `json:"leftover" doc:"Whether the row consumes leftovers"`
}

// ExportPlanResponse contains the rendered export.
type ExportPlanResponse struct {
	Rows []ExportRowResponse `json:"rows" doc:"Rows in calendar order"`
}

// ExportPlanOutput wraps the export response for Huma.
type ExportPlanOutput struct {
	Body ExportPlanResponse
}

// ReplaceSlotRequest is the request body for slot replacement.
type ReplaceSlotRequest struct {
	DesiredIngredientIDs []string `json:"desired_ingredient_ids,omitempty" doc:"Ingredients the replacement should use"`
	DesiredHard          bool     `json:"desired_hard,omitempty" doc:"Require desired ingredients when feasible"`
}

// ReplaceSlotInput wraps the replacement request for Huma.
type ReplaceSlotInput struct {
	ID   string `path:"id" doc:"Slot ID"`
	Body ReplaceSlotRequest
}

// ReplaceSlotResponse is the outcome of one replacement.
type ReplaceSlotResponse struct {
	RecipeID string         `json:"recipe_id" doc:"Newly assigned recipe"`
	Updated  []SlotResponse `json:"updated" doc:"Cook slot plus propagated leftover slots"`
}

// ReplaceSlotOutput wraps the replacement response for Huma.
type ReplaceSlotOutput struct {
	Body ReplaceSlotResponse
}

// === Handlers ===

func (s *Server) handleGeneratePlan(ctx context.Context, input *GeneratePlanInput) (*GeneratePlanOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	opts, err := s.buildPlannerOptions(input.Body)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Plan.GeneratePlan(ctx, s.householdUser, opts)
	if err != nil {
		return nil, mapPlannerError(err)
	}

	return &GeneratePlanOutput{
		Body: GeneratePlanResponse{
			Plan:     toPlanResponse(result.Plan),
			Slots:    toSlotResponses(result.Slots),
			Unfilled: result.Unfilled,
			Warning:  result.Warning,
		},
	}, nil
}

func (s *Server) handleListPlans(ctx context.Context, _ *struct{}) (*ListPlansOutput, error) {
	plans, err := s.services.Plan.ListPlans(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]PlanResponse, len(plans))
	for i, p := range plans {
		resp[i] = toPlanResponse(p)
	}
	return &ListPlansOutput{Body: ListPlansResponse{Plans: resp}}, nil
}

func (s *Server) handleGetPlan(ctx context.Context, input *GetPlanInput) (*PlanDetailOutput, error) {
	plan, slots, err := s.services.Plan.GetPlan(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &PlanDetailOutput{
		Body: PlanDetailResponse{
			Plan:  toPlanResponse(plan),
			Slots: toSlotResponses(slots),
		},
	}, nil
}

func (s *Server) handleDeletePlan(ctx context.Context, input *GetPlanInput) (*MessageOutput, error) {
	if err := s.services.Plan.DeletePlan(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Plan deleted"}}, nil
}

func (s *Server) handleExportPlan(ctx context.Context, input *GetPlanInput) (*ExportPlanOutput, error) {
	rows, err := s.services.Plan.ExportPlan(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]ExportRowResponse, len(rows))
	for i, row := range rows {
		resp[i] = ExportRowResponse{
			Date:       row.Date.Format(time.DateOnly),
			MealType:   string(row.MealType),
			Code:       row.Code,
			RecipeID:   row.RecipeID,
			RecipeName: row.RecipeName,
			Servings:   row.Servings,
			Leftover:   row.Leftover,
		}
	}
	return &ExportPlanOutput{Body: ExportPlanResponse{Rows: resp}}, nil
}

func (s *Server) handleReplaceSlot(ctx context.Context, input *ReplaceSlotInput) (*ReplaceSlotOutput, error) {
	desired := planner.DesiredFromIDs(input.Body.DesiredIngredientIDs, input.Body.DesiredHard)

	result, err := s.services.Plan.ReplaceSlot(ctx, s.householdUser, input.ID, desired)
	if err != nil {
		return nil, mapPlannerError(err)
	}

	return &ReplaceSlotOutput{
		Body: ReplaceSlotResponse{
			RecipeID: result.RecipeID,
			Updated:  toSlotResponses(result.Updated),
		},
	}, nil
}

func (s *Server) handleDislikeAndReplaceSlot(ctx context.Context, input *ReplaceSlotInput) (*ReplaceSlotOutput, error) {
	desired := planner.DesiredFromIDs(input.Body.DesiredIngredientIDs, input.Body.DesiredHard)

	result, err := s.services.Plan.DislikeAndReplace(ctx, s.householdUser, input.ID, desired)
	if err != nil {
		return nil, mapPlannerError(err)
	}

	return &ReplaceSlotOutput{
		Body: ReplaceSlotResponse{
			RecipeID: result.RecipeID,
			Updated:  toSlotResponses(result.Updated),
		},
	}, nil
}

// === Helpers ===

// buildPlannerOptions merges the request with the household defaults.
func (s *Server) buildPlannerOptions(req GeneratePlanRequest) (planner.Options, error) {
	startDate, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		return planner.Options{}, huma.Error400BadRequest("invalid start_date", err)
	}

	opts := planner.Options{
		StartDate:     startDate,
		Days:          req.Days,
		People:        s.defaults.People,
		LunchSpanDays: s.defaults.LunchSpanDays,
		CooldownDays:  s.defaults.CooldownDays,
		PreferPantry:  s.defaults.PreferPantry,
		Desired:       planner.DesiredFromIDs(req.DesiredIngredientIDs, req.DesiredHard),
		BatchMealType: domain.MealType(req.BatchMealType),
	}
	if req.People > 0 {
		opts.People = req.People
	}
	if req.LunchSpanDays > 0 {
		opts.LunchSpanDays = req.LunchSpanDays
	}
	if req.CooldownDays != nil {
		opts.CooldownDays = *req.CooldownDays
	}
	if req.PreferPantry != nil {
		opts.PreferPantry = *req.PreferPantry
	}
	return opts, nil
}

// mapPlannerError converts engine outcomes to coded API errors.
func mapPlannerError(err error) error {
	switch {
	case errors.Is(err, planner.ErrNoAlternative):
		return domainerrors.Unsatisfiable("no alternative recipe is available for this slot")
	case errors.Is(err, planner.ErrDietaryBlocked):
		return domainerrors.DietaryBlocked("dietary restrictions exclude every candidate recipe")
	case errors.Is(err, planner.ErrLeftoverSlot):
		return domainerrors.Validation("leftover slots cannot be replaced directly; replace the cook slot instead")
	case errors.Is(err, service.ErrPlanNotFound), errors.Is(err, service.ErrSlotNotFound):
		return err
	default:
		return err
	}
}

func toPlanResponse(p *domain.MealPlan) PlanResponse {
	return PlanResponse{
		ID:        p.ID,
		StartDate: p.StartDate.Format(time.DateOnly),
		Days:      p.Days,
		CreatedAt: p.CreatedAt,
	}
}

func toSlotResponses(slots []*domain.Slot) []SlotResponse {
	resp := make([]SlotResponse, len(slots))
	for i, sl := range slots {
		resp[i] = SlotResponse{
			ID:       sl.ID,
			PlanID:   sl.PlanID,
			Date:     sl.Date.Format(time.DateOnly),
			MealType: string(sl.MealType),
			RecipeID: sl.RecipeID,
			Servings: sl.Servings,
			Leftover: sl.IsLeftover(),
		}
	}
	return resp
}
