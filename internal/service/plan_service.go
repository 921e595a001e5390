package service

import (
	"context"
	"log/slog"
	"time"

	"CoinVestAPI/internal/helper"
	"CoinVestAPI/internal/model"
	"CoinVestAPI/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type PlanService struct {
	plans     *repository.PlanRepository
	validator *validator.Validate
}

func NewPlanService(plans *repository.PlanRepository, validator *validator.Validate) *PlanService {
	return &PlanService{
		plans:     plans,
		validator: validator,
	}
}

func planToResponse(p model.Plan) model.PlanResponse {
	return model.PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		MinAmount:    p.MinAmount,
		MaxAmount:    p.MaxAmount,
		DurationDays: p.DurationDays,
		ROIPercent:   p.ROIPercent,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}

func (s *PlanService) CreatePlan(ctx context.Context, req model.CreatePlanRequest) (*model.PlanResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewBadRequestError("")
	}

	plan := &model.Plan{
		ID:           uuid.New(),
		Name:         req.Name,
		MinAmount:    req.MinAmount,
		MaxAmount:    req.MaxAmount,
		DurationDays: req.DurationDays,
		ROIPercent:   req.ROIPercent,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.plans.Create(ctx, plan); err != nil {
		slog.Error("Failed to create plan", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	response := planToResponse(*plan)
	return &response, nil
}

func (s *PlanService) GetPlans(ctx context.Context) ([]model.PlanResponse, error) {
	plans, err := s.plans.List(ctx)
	if err != nil {
		slog.Error("Failed to list plans", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	response := make([]model.PlanResponse, 0, len(plans))
	for _, p := range plans {
		response = append(response, planToResponse(p))
	}
	return response, nil
}

func (s *PlanService) DeletePlan(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.plans.Delete(ctx, id)
	if err != nil {
		if repository.IsConstraintViolation(err) {
			return helper.NewConflictError("Plan is referenced by transactions")
		}
		slog.Error("Failed to delete plan", "error", err, "planID", id)
		return helper.NewInternalServerError("")
	}
	if !deleted {
		return helper.NewNotFoundError("")
	}
	return nil
}
