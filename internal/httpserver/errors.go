package httpserver

import (
	"errors"
	"net/http"

	"bdshop/internal/domain"
	"bdshop/internal/service/admin"
	customersvc "bdshop/internal/service/customer"
	ordersvc "bdshop/internal/service/order"
	productsvc "bdshop/internal/service/product"
	"github.com/gin-gonic/gin"
)

// writeError maps service errors onto HTTP status codes. Unknown errors are
// logged and answered with a generic 500.
func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	status := http.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.As(err, &verr):
		status, msg = http.StatusBadRequest, verr.Msg
	case errors.Is(err, domain.ErrEmptyCart), errors.Is(err, domain.ErrInvalidStatus):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrAlreadyExists):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInsufficientStock):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, ordersvc.ErrDuplicateRequest):
		status, msg = http.StatusConflict, "duplicate request"
	case errors.Is(err, customersvc.ErrInvalidCredentials), errors.Is(err, admin.ErrInvalidPassword):
		status, msg = http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, customersvc.ErrInvalidToken), errors.Is(err, admin.ErrUnauthorized):
		status, msg = http.StatusUnauthorized, "invalid or expired token"
	case errors.Is(err, productsvc.ErrImagesUnavailable):
		status, msg = http.StatusServiceUnavailable, "image uploads are not configured"
	default:
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
