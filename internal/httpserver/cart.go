package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *handlers) getCart(c *gin.Context) {
	cart, err := h.deps.CartSvc.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid cart item payload")
		return
	}
	cart, err := h.deps.CartSvc.AddItem(c.Request.Context(), sessionID(c), req.ProductID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *handlers) updateCartItem(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid quantity payload")
		return
	}
	cart, err := h.deps.CartSvc.UpdateQuantity(c.Request.Context(), sessionID(c), c.Param("productId"), req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	cart, err := h.deps.CartSvc.RemoveItem(c.Request.Context(), sessionID(c), c.Param("productId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *handlers) clearCart(c *gin.Context) {
	if err := h.deps.CartSvc.Clear(c.Request.Context(), sessionID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) getWishlist(c *gin.Context) {
	w, err := h.deps.WishlistSvc.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWishlistResponse(w))
}

func (h *handlers) addWishlistItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid wishlist payload")
		return
	}
	w, err := h.deps.WishlistSvc.Add(c.Request.Context(), sessionID(c), req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWishlistResponse(w))
}

func (h *handlers) wishlistContains(c *gin.Context) {
	ok, err := h.deps.WishlistSvc.Contains(c.Request.Context(), sessionID(c), c.Param("productId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"productId": c.Param("productId"), "inWishlist": ok})
}

func (h *handlers) removeWishlistItem(c *gin.Context) {
	w, err := h.deps.WishlistSvc.Remove(c.Request.Context(), sessionID(c), c.Param("productId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWishlistResponse(w))
}

func (h *handlers) moveWishlistItemToCart(c *gin.Context) {
	w, cart, err := h.deps.WishlistSvc.MoveToCart(c.Request.Context(), sessionID(c), c.Param("productId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wishlist": toWishlistResponse(w), "cart": toCartResponse(cart)})
}
