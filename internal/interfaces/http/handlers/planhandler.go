package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lumen/internal/application/billing/usecases"
	"lumen/internal/shared/logger"
	"lumen/internal/shared/utils"
)

type PlanHandler struct {
	listPlansUC *usecases.ListPlansUseCase
	logger      logger.Interface
}

func NewPlanHandler(listPlansUC *usecases.ListPlansUseCase, logger logger.Interface) *PlanHandler {
	return &PlanHandler{
		listPlansUC: listPlansUC,
		logger:      logger,
	}
}

// ListPlans returns the public plan catalog.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	result, err := h.listPlansUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
