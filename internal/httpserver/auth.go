package httpserver

import (
	"net/http"

	customersvc "bdshop/internal/service/customer"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handlers) signup(c *gin.Context) {
	var in customersvc.SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid signup payload")
		return
	}
	customer, err := h.deps.CustomerSvc.Signup(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": toCustomerResponse(*customer)})
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password required")
		return
	}
	customer, token, err := h.deps.CustomerSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   h.deps.CustomerSvc.AccessTTLSeconds(),
		"customer":     toCustomerResponse(*customer),
	})
}

func (h *handlers) logout(c *gin.Context) {
	if err := h.deps.CustomerSvc.Logout(c.Request.Context(), c.GetString(ctxAccessToken)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"customer": toCustomerResponse(*currentCustomer(c))})
}
