package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lumen/internal/application/billing/usecases"
	"lumen/internal/interfaces/http/middleware"
	"lumen/internal/shared/logger"
	"lumen/internal/shared/utils"
)

type BillingHandler struct {
	createCheckoutUC   *usecases.CreateCheckoutUseCase
	verifyPaymentUC    *usecases.VerifyPaymentUseCase
	getSubscriptionUC  *usecases.GetSubscriptionUseCase
	listTransactionsUC *usecases.ListTransactionsUseCase
	logger             logger.Interface
}

func NewBillingHandler(
	createCheckoutUC *usecases.CreateCheckoutUseCase,
	verifyPaymentUC *usecases.VerifyPaymentUseCase,
	getSubscriptionUC *usecases.GetSubscriptionUseCase,
	listTransactionsUC *usecases.ListTransactionsUseCase,
	logger logger.Interface,
) *BillingHandler {
	return &BillingHandler{
		createCheckoutUC:   createCheckoutUC,
		verifyPaymentUC:    verifyPaymentUC,
		getSubscriptionUC:  getSubscriptionUC,
		listTransactionsUC: listTransactionsUC,
		logger:             logger,
	}
}

type CreateCheckoutRequest struct {
	PlanID   string `json:"plan_id" binding:"required"`
	Interval string `json:"interval" binding:"required,oneof=month year"`
	Currency string `json:"currency" binding:"required"`
}

// CreateCheckout starts a gateway checkout for the authenticated user.
func (h *BillingHandler) CreateCheckout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.createCheckoutUC.Execute(c.Request.Context(), usecases.CreateCheckoutCommand{
		UserID:   userID,
		PlanSID:  req.PlanID,
		Interval: req.Interval,
		Currency: req.Currency,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "checkout created", result)
}

// VerifyPayment checks a transaction the user was redirected back with and
// activates the subscription when the gateway reports it paid.
func (h *BillingHandler) VerifyPayment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	transactionID := c.Query("transaction_id")
	if transactionID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "transaction_id is required")
		return
	}

	result, err := h.verifyPaymentUC.Execute(c.Request.Context(), usecases.VerifyPaymentCommand{
		UserID:        userID,
		TransactionID: transactionID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}

// GetSubscription returns the user's subscription, null when none exists.
func (h *BillingHandler) GetSubscription(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := h.getSubscriptionUC.Execute(c.Request.Context(), usecases.GetSubscriptionCommand{
		UserID: userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTransactions returns the user's payment history, newest first.
func (h *BillingHandler) ListTransactions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.listTransactionsUC.Execute(c.Request.Context(), usecases.ListTransactionsQuery{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
