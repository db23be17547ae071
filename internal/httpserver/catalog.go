package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"bdshop/internal/domain"
	productsvc "bdshop/internal/service/product"
	"github.com/gin-gonic/gin"
)

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

func queryBool(c *gin.Context, key string) bool {
	b, _ := strconv.ParseBool(c.Query(key))
	return b
}

func productFilterFromQuery(c *gin.Context) domain.ProductFilter {
	return domain.ProductFilter{
		Category:    c.Query("category"),
		Query:       c.Query("q"),
		Status:      domain.ProductStatus(strings.ToLower(c.Query("status"))),
		OnSale:      queryBool(c, "onSale"),
		InStockOnly: queryBool(c, "inStock"),
		Sort:        c.Query("sort"),
		Limit:       queryInt(c, "limit"),
		Offset:      queryInt(c, "offset"),
	}
}

// writeProductPage reports the page bounds the service applied, not the raw
// query values.
func writeProductPage(c *gin.Context, products []domain.Product, total int, f domain.ProductFilter) {
	limit, offset := domain.PageBounds(f.Limit, f.Offset)
	c.JSON(http.StatusOK, listResponse{
		Results: toProductResponses(products),
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

func (h *handlers) listProducts(c *gin.Context) {
	f := productFilterFromQuery(c)
	products, total, err := h.deps.ProductSvc.ListPublic(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	writeProductPage(c, products, total, f)
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.ProductSvc.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*p))
}

func (h *handlers) listCategories(c *gin.Context) {
	categories, err := h.deps.CategorySvc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	c.JSON(http.StatusOK, gin.H{"results": categories})
}

func (h *handlers) listCategoryProducts(c *gin.Context) {
	category, err := h.deps.CategorySvc.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		writeError(c, err)
		return
	}
	f := productFilterFromQuery(c)
	f.Category = category.Key
	products, total, err := h.deps.ProductSvc.ListPublic(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"results":  toProductResponses(products),
		"total":    total,
	})
}

func (h *handlers) adminListProducts(c *gin.Context) {
	f := productFilterFromQuery(c)
	products, total, err := h.deps.ProductSvc.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	writeProductPage(c, products, total, f)
}

func (h *handlers) adminGetProduct(c *gin.Context) {
	p, err := h.deps.ProductSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*p))
}

func (h *handlers) adminCreateProduct(c *gin.Context) {
	var in productsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid product payload")
		return
	}
	p, err := h.deps.ProductSvc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(*p))
}

func (h *handlers) adminUpdateProduct(c *gin.Context) {
	var in productsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid product payload")
		return
	}
	p, err := h.deps.ProductSvc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*p))
}

func (h *handlers) adminDeleteProduct(c *gin.Context) {
	if err := h.deps.ProductSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type stockRequest struct {
	Delta int `json:"delta"`
}

func (h *handlers) adminAdjustStock(c *gin.Context) {
	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid stock payload")
		return
	}
	p, err := h.deps.ProductSvc.AdjustStock(c.Request.Context(), c.Param("id"), req.Delta)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*p))
}

func (h *handlers) adminUploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, "multipart form with images required")
		return
	}
	files := form.File["images"]
	uploads := make([]productsvc.Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			badRequest(c, "unreadable file "+fh.Filename)
			return
		}
		defer f.Close()
		uploads = append(uploads, productsvc.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
	}
	p, failed, err := h.deps.ProductSvc.AddImages(c.Request.Context(), c.Param("id"), uploads)
	if err != nil {
		writeError(c, err)
		return
	}
	if failed == nil {
		failed = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"product": toProductResponse(*p), "failed": failed})
}

type categoryRequest struct {
	Name      string `json:"name"`
	NameBn    string `json:"nameBn"`
	SortOrder int    `json:"sortOrder"`
}

func (h *handlers) adminUpsertCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid category payload")
		return
	}
	cat, err := h.deps.CategorySvc.Upsert(c.Request.Context(), domain.Category{
		Key:       c.Param("key"),
		Name:      req.Name,
		NameBn:    req.NameBn,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}
