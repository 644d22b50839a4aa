package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/product-catalog-service/internal/service"
	"github.com/maxviazov/product-catalog-service/pkg/response"
)

type ProductHandler struct {
	svc         service.ProductService
	defaultSize int
}

func NewProductHandler(svc service.ProductService, defaultSize int) *ProductHandler {
	return &ProductHandler{svc: svc, defaultSize: defaultSize}
}

func (h *ProductHandler) Register(r *gin.RouterGroup) {
	g := r.Group(productsPath)
	{
		g.GET("", h.listByCategory)
		// Static segment first; gin resolves it ahead of the :id wildcard.
		g.GET("/search", h.search)
		g.GET("/:id", h.getByID)
	}
}

// listByCategory serves GET /products?categoryId=.
func (h *ProductHandler) listByCategory(c *gin.Context) {
	var ferrs []service.FieldError
	var categoryID int64
	if raw, ok := c.GetQuery("categoryId"); !ok || raw == "" {
		ferrs = append(ferrs, service.FieldError{Field: "categoryId", Message: "is required"})
	} else {
		var fe []service.FieldError
		categoryID, fe = int64Param(raw, "categoryId")
		ferrs = append(ferrs, fe...)
	}
	page, fe := pageQuery(c, h.defaultSize)
	ferrs = append(ferrs, fe...)
	if err := service.NewInvalidArgument(ferrs); err != nil {
		response.WriteError(c, err)
		return
	}

	res, err := h.svc.ListProductsByCategory(c.Request.Context(), categoryID, page)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *ProductHandler) search(c *gin.Context) {
	page, ferrs := pageQuery(c, h.defaultSize)
	if err := service.NewInvalidArgument(ferrs); err != nil {
		response.WriteError(c, err)
		return
	}
	res, err := h.svc.SearchProductsByName(c.Request.Context(), c.Query("name"), page)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *ProductHandler) getByID(c *gin.Context) {
	id, ferrs := int64Param(c.Param("id"), "id")
	if err := service.NewInvalidArgument(ferrs); err != nil {
		response.WriteError(c, err)
		return
	}
	p, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, p)
}
