package httpserver

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"bdshop/internal/domain"
	"bdshop/internal/export"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type adminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *handlers) adminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "password required")
		return
	}
	token, expiresAt, err := h.deps.AdminSvc.Login(req.Password)
	if err != nil {
		h.logger.Warn().Str("ip", c.ClientIP()).Msg("admin login rejected")
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_at":   expiresAt.UTC(),
	})
}

func (h *handlers) adminSummary(c *gin.Context) {
	sum, err := h.deps.AdminSvc.Summary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products":       sum.Products,
		"outOfStock":     sum.OutOfStock,
		"orders":         sum.Orders,
		"ordersByStatus": sum.OrdersByState,
		"revenue":        money(sum.RevenuePoisha),
		"currency":       domain.Currency,
	})
}

func (h *handlers) exportProducts(c *gin.Context) {
	f := productFilterFromQuery(c)
	products, err := h.deps.ProductSvc.ListAll(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteProducts(&buf, products); err != nil {
		writeError(c, err)
		return
	}
	sendXLSX(c, "products", buf.Bytes())
}

func (h *handlers) exportOrders(c *gin.Context) {
	f, err := orderFilterFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	orders, err := h.deps.OrderSvc.ListAll(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteOrders(&buf, orders); err != nil {
		writeError(c, err)
		return
	}
	sendXLSX(c, "orders", buf.Bytes())
}

func sendXLSX(c *gin.Context, name string, data []byte) {
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
