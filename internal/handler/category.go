package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/product-catalog-service/internal/service"
	"github.com/maxviazov/product-catalog-service/pkg/response"
)

type CategoryHandler struct {
	svc         service.CategoryService
	products    service.ProductService
	defaultSize int
}

func NewCategoryHandler(svc service.CategoryService, products service.ProductService, defaultSize int) *CategoryHandler {
	return &CategoryHandler{svc: svc, products: products, defaultSize: defaultSize}
}

func (h *CategoryHandler) Register(r *gin.RouterGroup) {
	g := r.Group(categoriesPath)
	{
		g.GET("", h.list)
		// Shared wildcard name so the nested products route does not conflict in gin's tree.
		g.GET("/:category_id", h.getByID)
		g.GET("/:category_id/products", h.listProducts)
	}
}

func (h *CategoryHandler) list(c *gin.Context) {
	page, ferrs := pageQuery(c, h.defaultSize)
	if err := service.NewInvalidArgument(ferrs); err != nil {
		response.WriteError(c, err)
		return
	}
	res, err := h.svc.ListCategories(c.Request.Context(), page)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *CategoryHandler) getByID(c *gin.Context) {
	id, ferrs := int64Param(c.Param("category_id"), "category_id")
	if err := service.NewInvalidArgument(ferrs); err != nil {
		response.WriteError(c, err)
		return
	}
	cat, err := h.svc.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, cat)
}

// listProducts is the path-style twin of GET /products?categoryId=.
func (h *CategoryHandler) listProducts(c *gin.Context) {
	id, ferrs := int64Param(c.Param("category_id"), "category_id")
	page, fe := pageQuery(c, h.defaultSize)
	ferrs = append(ferrs, fe...)
	if err := service.NewInvalidArgument(ferrs); err != nil {
		response.WriteError(c, err)
		return
	}
	res, err := h.products.ListProductsByCategory(c.Request.Context(), id, page)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}
