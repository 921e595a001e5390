package model

import "github.com/google/uuid"

type CreatePlanRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	MinAmount    string `json:"min_amount" validate:"required,numeric"`
	MaxAmount    string `json:"max_amount" validate:"required,numeric"`
	DurationDays int    `json:"duration_days" validate:"required,gt=0"`
	ROIPercent   string `json:"roi_percent" validate:"required,numeric"`
}

type PlanResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	MinAmount    string    `json:"min_amount"`
	MaxAmount    string    `json:"max_amount"`
	DurationDays int       `json:"duration_days"`
	ROIPercent   string    `json:"roi_percent"`
	CreatedAt    string    `json:"created_at"`
}
