package controller

import (
	"CoinVestAPI/internal/helper"
	"CoinVestAPI/internal/model"
	"CoinVestAPI/internal/service"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type PlanController struct {
	planService *service.PlanService
}

func NewPlanController(planService *service.PlanService) *PlanController {
	return &PlanController{
		planService: planService,
	}
}

// ListPlans godoc
// @Summary      List Plans
// @Tags         plans
// @Produce      json
// @Success      200  {object}  helper.ResponseSuccess{data=[]model.PlanResponse}
// @Router       /api/plans [get]
func (c *PlanController) ListPlans(w http.ResponseWriter, r *http.Request) {
	resp, err := c.planService.GetPlans(r.Context())
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

// CreatePlan godoc
// @Summary      Create Plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.CreatePlanRequest true "Create Plan Request"
// @Success      200  {object}  helper.ResponseSuccess{data=model.PlanResponse}
// @Failure      400  {object}  helper.ResponseError
// @Router       /api/admin/plans [post]
func (c *PlanController) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid request body", "error", err)
		helper.WriteError(w, helper.NewBadRequestError(""))
		return
	}

	resp, err := c.planService.CreatePlan(r.Context(), req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

// DeletePlan godoc
// @Summary      Delete Plan
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        planId path string true "Plan ID"
// @Success      200  {object}  helper.ResponseSuccess
// @Failure      404  {object}  helper.ResponseError
// @Router       /api/admin/plans/{planId} [delete]
func (c *PlanController) DeletePlan(w http.ResponseWriter, r *http.Request) {
	planID, err := uuid.Parse(chi.URLParam(r, "planId"))
	if err != nil {
		helper.WriteError(w, helper.NewBadRequestError("Invalid plan id"))
		return
	}

	if err := c.planService.DeletePlan(r.Context(), planID); err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, nil)
}
