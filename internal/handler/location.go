package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/product-catalog-service/internal/service"
	"github.com/maxviazov/product-catalog-service/pkg/response"
)

type LocationHandler struct {
	svc         service.LocationService
	defaultSize int
}

func NewLocationHandler(svc service.LocationService, defaultSize int) *LocationHandler {
	return &LocationHandler{svc: svc, defaultSize: defaultSize}
}

func (h *LocationHandler) Register(r *gin.RouterGroup) {
	r.GET(countriesPath, h.listCountries)
	r.GET(statesPath, h.listStates)
}

func (h *LocationHandler) listCountries(c *gin.Context) {
	page, ferrs := pageQuery(c, h.defaultSize)
	if err := service.NewInvalidArgument(ferrs); err != nil {
		response.WriteError(c, err)
		return
	}
	res, err := h.svc.ListCountries(c.Request.Context(), page)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

// listStates serves GET /states?countryCode=.
func (h *LocationHandler) listStates(c *gin.Context) {
	var ferrs []service.FieldError
	code, ok := c.GetQuery("countryCode")
	if !ok || code == "" {
		ferrs = append(ferrs, service.FieldError{Field: "countryCode", Message: "is required"})
	}
	page, fe := pageQuery(c, h.defaultSize)
	ferrs = append(ferrs, fe...)
	if err := service.NewInvalidArgument(ferrs); err != nil {
		response.WriteError(c, err)
		return
	}
	res, err := h.svc.ListStates(c.Request.Context(), code, page)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}
