// Package merchant exposes CRUD routes for the canonical merchant list.
package merchant

import (
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Lakshmi0706/Mogrds/internal/repositories/merchant"
	"github.com/Lakshmi0706/Mogrds/pkg/models"
)

// Register registers merchant routes
func Register(g *echo.Group) {
	g.GET("", ListMerchants)
	g.GET("/:id", GetMerchant)
	g.POST("", CreateMerchant)
	g.PUT("/:id", UpdateMerchant)
	g.DELETE("/:id", DeleteMerchant)
}

// ListMerchantsResponse is a page of merchants
type ListMerchantsResponse struct {
	Merchants []models.Merchant `json:"merchants"`
	Total     int               `json:"total"`
	Page      int               `json:"page"`
	PageSize  int               `json:"page_size"`
}

// ListMerchants lists merchants in reference-list order
func ListMerchants(c echo.Context) error {
	ctx := c.Request().Context()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	ctx, repo, err := ectoinject.GetContext[*merchant.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	merchants, total, err := repo.List(ctx, page, pageSize)
	if err != nil {
		return err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return c.JSON(http.StatusOK, ListMerchantsResponse{
		Merchants: merchants,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	})
}

// GetMerchant gets a merchant by ID
func GetMerchant(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*merchant.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	m, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, m)
}

// CreateMerchant adds a merchant to the reference list
func CreateMerchant(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.CreateMerchantRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	ctx, repo, err := ectoinject.GetContext[*merchant.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	created, err := repo.Create(ctx, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// UpdateMerchant updates a merchant
func UpdateMerchant(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	var req models.UpdateMerchantRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx, repo, err := ectoinject.GetContext[*merchant.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	updated, err := repo.Update(ctx, id, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteMerchant soft deletes a merchant
func DeleteMerchant(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*merchant.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	if err := repo.Delete(ctx, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
