package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketplace/commodity-api/internal/core/domain"
	"github.com/marketplace/commodity-api/internal/core/ports"
)

// CommodityHandler handles HTTP requests for commodity operations.
type CommodityHandler struct {
	service ports.CommodityService
}

func NewCommodityHandler(service ports.CommodityService) *CommodityHandler {
	return &CommodityHandler{service: service}
}

// List handles GET /api/commodity.
//
// @Summary      List all commodities
// @Tags         commodity
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Commodity
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/commodity [get]
func (h *CommodityHandler) List(c echo.Context) error {
	list, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// ByBusiness handles GET /api/commodity/businesss/:id.
//
// @Summary      Commodities listed by a business
// @Tags         commodity
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Business user id"
// @Success      200  {array}   domain.Commodity
// @Failure      500  {object}  errorResponse
// @Router       /api/commodity/businesss/{id} [get]
func (h *CommodityHandler) ByBusiness(c echo.Context) error {
	list, err := h.service.FindByBusiness(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// ByCustomer handles GET /api/commodity/customers/:id.
//
// @Summary      Commodities a user enrolled in
// @Tags         commodity
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer user id"
// @Success      200  {array}   domain.Commodity
// @Failure      500  {object}  errorResponse
// @Router       /api/commodity/customers/{id} [get]
func (h *CommodityHandler) ByCustomer(c echo.Context) error {
	list, err := h.service.FindByCustomer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// ByTitle handles GET /api/commodity/findByName/:name.
//
// @Summary      Commodities with an exact title
// @Tags         commodity
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Exact title"
// @Success      200   {array}   domain.Commodity
// @Failure      500   {object}  errorResponse
// @Router       /api/commodity/findByName/{name} [get]
func (h *CommodityHandler) ByTitle(c echo.Context) error {
	list, err := h.service.FindByTitle(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Get handles GET /api/commodity/:id. An unknown id answers 200 with a null body.
//
// @Summary      Get a commodity by id
// @Tags         commodity
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Commodity id"
// @Success      200  {object}  domain.Commodity
// @Failure      500  {object}  errorResponse
// @Router       /api/commodity/{id} [get]
func (h *CommodityHandler) Get(c echo.Context) error {
	commodity, err := h.service.FindByID(c.Request().Context(), c.Param("id"))
	if errors.Is(err, domain.ErrCommodityNotFound) {
		return c.JSON(http.StatusOK, nil)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commodity)
}

// Create handles POST /api/commodity.
//
// @Summary      List a new commodity
// @Description  Only business users may create. Customers receive 400.
// @Tags         commodity
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCommodityRequest  true  "Commodity details"
// @Success      200   {object}  commodityResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/commodity [post]
func (h *CommodityHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createCommodityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	created, err := h.service.Create(c.Request().Context(), p, toCreateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commodityResponse{Message: "commodity saved", Commodity: created})
}

// Enroll handles POST /api/commodity/enroll/:id.
//
// @Summary      Enroll the caller in a commodity
// @Tags         commodity
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Commodity id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/commodity/enroll/{id} [post]
func (h *CommodityHandler) Enroll(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Enroll(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "enrollment complete"})
}

// Update handles PATCH /api/commodity/update/:id.
//
// @Summary      Update a commodity
// @Description  Only the owning business may update. Absent fields are left untouched.
// @Tags         commodity
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Commodity id"
// @Param        body  body      updateCommodityRequest  true  "Fields to change"
// @Success      200   {object}  commodityResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/commodity/update/{id} [patch]
func (h *CommodityHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateCommodityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.service.Update(c.Request().Context(), p, c.Param("id"), toPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commodityResponse{Message: "commodity updated", Commodity: updated})
}

// Delete handles DELETE /api/commodity/delete/:id.
//
// @Summary      Delete a commodity
// @Tags         commodity
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Commodity id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/commodity/delete/{id} [delete]
func (h *CommodityHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "commodity deleted"})
}
