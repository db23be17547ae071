package httpserver

import (
	"net/http"

	"bdshop/internal/domain"
	ordersvc "bdshop/internal/service/order"
	"github.com/gin-gonic/gin"
)

func (h *handlers) checkout(c *gin.Context) {
	var in ordersvc.CheckoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid checkout payload")
		return
	}
	var customerID *string
	if customer := currentCustomer(c); customer != nil {
		id := customer.ID
		customerID = &id
	}
	o, err := h.deps.OrderSvc.Checkout(c.Request.Context(), sessionID(c), customerID, in, c.GetHeader("Idempotency-Key"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*o))
}

func (h *handlers) getOrder(c *gin.Context) {
	o, err := h.deps.OrderSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*o))
}

func (h *handlers) myOrders(c *gin.Context) {
	customer := currentCustomer(c)
	limit, offset := queryInt(c, "limit"), queryInt(c, "offset")
	orders, total, err := h.deps.OrderSvc.ListForCustomer(c.Request.Context(), customer.ID, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	limit, offset = domain.PageBounds(limit, offset)
	c.JSON(http.StatusOK, listResponse{Results: toOrderResponses(orders), Total: total, Limit: limit, Offset: offset})
}

func orderFilterFromQuery(c *gin.Context) (domain.OrderFilter, error) {
	f := domain.OrderFilter{Limit: queryInt(c, "limit"), Offset: queryInt(c, "offset")}
	if raw := c.Query("status"); raw != "" {
		st, err := domain.ParseOrderStatus(raw)
		if err != nil {
			return f, err
		}
		f.Status = st
	}
	return f, nil
}

func (h *handlers) adminListOrders(c *gin.Context) {
	f, err := orderFilterFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	orders, total, err := h.deps.OrderSvc.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	limit, offset := domain.PageBounds(f.Limit, f.Offset)
	c.JSON(http.StatusOK, listResponse{Results: toOrderResponses(orders), Total: total, Limit: limit, Offset: offset})
}

func (h *handlers) adminGetOrder(c *gin.Context) {
	h.getOrder(c)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *handlers) adminUpdateOrderStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status required")
		return
	}
	o, err := h.deps.OrderSvc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*o))
}
