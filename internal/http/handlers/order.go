package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/coursehub-backend/internal/http/response"
	"github.com/yungbote/coursehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/services"
)

type OrderHandler struct {
	log          *logger.Logger
	orderService services.OrderService
}

func NewOrderHandler(log *logger.Logger, orderService services.OrderService) *OrderHandler {
	return &OrderHandler{log: log.With("handler", "OrderHandler"), orderService: orderService}
}

type createOrderRequest struct {
	Amount float64 `json:"amount"`
	Course struct {
		ID    uuid.UUID `json:"id"`
		Title string    `json:"title"`
	} `json:"course"`
}

type purchaseRequest struct {
	createOrderRequest
	PaymentResponse *services.ConfirmOrderInput `json:"paymentResponse"`
}

// POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	h.create(c, req)
}

// POST /api/orders/confirm
func (h *OrderHandler) Confirm(c *gin.Context) {
	var req services.ConfirmOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	h.confirm(c, req)
}

// POST /api/auth/purchase-course dispatches on paymentResponse: absent creates
// an order, present confirms one.
func (h *OrderHandler) Purchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.PaymentResponse == nil {
		h.create(c, req.createOrderRequest)
		return
	}
	h.confirm(c, *req.PaymentResponse)
}

func (h *OrderHandler) create(c *gin.Context, req createOrderRequest) {
	payer := ctxutil.GetSession(c.Request.Context())
	if payer == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errLoginRequired)
		return
	}
	res, err := h.orderService.CreateOrder(c.Request.Context(), payer, services.CreateOrderInput{
		Amount:   req.Amount,
		CourseID: req.Course.ID,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"order": res.Gateway, "keyId": res.KeyID})
}

func (h *OrderHandler) confirm(c *gin.Context, in services.ConfirmOrderInput) {
	payer := ctxutil.GetSession(c.Request.Context())
	if payer == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errLoginRequired)
		return
	}
	res, err := h.orderService.ConfirmOrder(c.Request.Context(), payer, in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"message": services.MsgPaymentSuccess,
		"enrollment": gin.H{
			"message":      res.Enrollment.Message,
			"enrollmentId": res.Enrollment.EnrollmentID,
		},
	})
}

// GET /api/orders
func (h *OrderHandler) List(c *gin.Context) {
	rows, err := h.orderService.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/orders/mine
func (h *OrderHandler) Mine(c *gin.Context) {
	s := ctxutil.GetSession(c.Request.Context())
	if s == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errLoginRequired)
		return
	}
	rows, err := h.orderService.ListByUser(c.Request.Context(), s.UserID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// DELETE /api/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Order deleted successfully"})
}
