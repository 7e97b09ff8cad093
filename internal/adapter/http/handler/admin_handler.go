package handler

import (
	"tipbot/internal/adapter/http/dto"
	"tipbot/internal/adapter/http/middleware"
	"tipbot/internal/core/domain"
	"tipbot/internal/core/ports"
	"tipbot/pkg/apperror"
	"tipbot/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles the operator endpoints.
type AdminHandler struct {
	adminSvc ports.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminSvc ports.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

// Login handles POST /api/v1/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	token, expiry, err := h.adminSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Picked up by the audit middleware.
	c.Set(middleware.CtxAdminSubject, req.Username)
	response.OK(c, dto.LoginResponse{
		Token:  token,
		Expiry: expiry.Unix(),
	})
}

// GetMode handles GET /api/v1/admin/mode.
func (h *AdminHandler) GetMode(c *gin.Context) {
	response.OK(c, dto.ModeResponse{Status: h.adminSvc.Mode()})
}

// SetMode handles PUT /api/v1/admin/mode.
func (h *AdminHandler) SetMode(c *gin.Context) {
	var req dto.ModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.adminSvc.SetMode(c.Request.Context(), domain.BotMode(req.Status)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ModeResponse{Status: h.adminSvc.Mode()})
}

// ListTips handles GET /api/v1/admin/tips. Without a status it lists failed
// transfers, which are the ones an operator has to reconcile.
func (h *AdminHandler) ListTips(c *gin.Context) {
	var q dto.TipListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	status := domain.TipStatus(q.Status)
	if status == "" {
		status = domain.TipStatusTransferFailed
	}

	tips, err := h.adminSvc.ListTips(c.Request.Context(), status, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.TipResponse, 0, len(tips))
	for _, t := range tips {
		items = append(items, dto.NewTipResponse(t))
	}
	response.List(c, items)
}
