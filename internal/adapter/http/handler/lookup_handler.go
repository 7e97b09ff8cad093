package handler

import (
	"tipbot/internal/adapter/http/dto"
	"tipbot/internal/core/domain"
	"tipbot/internal/core/ports"
	"tipbot/pkg/apperror"
	"tipbot/pkg/response"

	"github.com/gin-gonic/gin"
)

// LookupHandler serves the public account lookups.
type LookupHandler struct {
	lookupSvc ports.LookupService
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(lookupSvc ports.LookupService) *LookupHandler {
	return &LookupHandler{lookupSvc: lookupSvc}
}

// ByName handles GET /api/v1/users/:platform/:name.
func (h *LookupHandler) ByName(c *gin.Context) {
	var uri dto.UserURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	acct, err := h.lookupSvc.ByName(c.Request.Context(), domain.Platform(uri.Platform), uri.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewAccountResponse(acct))
}

// ByAddress handles GET /api/v1/addresses/:address.
func (h *LookupHandler) ByAddress(c *gin.Context) {
	var uri dto.AddressURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	acct, err := h.lookupSvc.ByAddress(c.Request.Context(), uri.Address)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewAccountResponse(acct))
}

// List handles GET /api/v1/users/:platform.
func (h *LookupHandler) List(c *gin.Context) {
	var uri dto.PlatformURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	accounts, err := h.lookupSvc.List(c.Request.Context(), domain.Platform(uri.Platform))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		items = append(items, dto.NewAccountResponse(&accounts[i]))
	}
	response.List(c, items)
}
