package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/agrilink/internal/repo"
	"github.com/Skotchmaster/agrilink/internal/service"
	"github.com/Skotchmaster/agrilink/internal/transport"
	"github.com/Skotchmaster/agrilink/pkg/util"
)

type ProductHandler struct {
	Catalog *service.CatalogService
}

func queryInt64(c echo.Context, name string) (*int64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" invalide")
	}
	return &n, nil
}

func productFilter(c echo.Context) (repo.ProductFilter, error) {
	var (
		f   repo.ProductFilter
		err error
	)
	if f.CategoryID, err = queryID(c, "category_id"); err != nil {
		return f, err
	}
	if f.RegionID, err = queryID(c, "region_id"); err != nil {
		return f, err
	}
	if f.MinPrice, err = queryInt64(c, "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = queryInt64(c, "max_price"); err != nil {
		return f, err
	}
	f.Search = c.QueryParam("search")
	f.IsBio = c.QueryParam("is_bio") == "true"
	return f, nil
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	f, err := productFilter(c)
	if err != nil {
		return err
	}
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	limit := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)

	res, err := h.Catalog.ListProducts(c.Request().Context(), f, page, limit)
	if err != nil {
		return fail(c, "list_products_error", err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) Search(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	limit := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)

	res, err := h.Catalog.SearchProducts(c.Request().Context(), c.QueryParam("q"), page, limit)
	if err != nil {
		return fail(c, "search_error", err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	p, err := h.Catalog.GetProduct(c.Request().Context(), id)
	if err != nil {
		return fail(c, "get_product_error", err)
	}
	return ok(c, http.StatusOK, p)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req transport.CreateProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	p, err := h.Catalog.CreateProduct(c.Request().Context(), sessionFrom(c), req)
	if err != nil {
		return fail(c, "create_product_error", err)
	}
	return ok(c, http.StatusCreated, p)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req transport.PatchProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	p, err := h.Catalog.PatchProduct(c.Request().Context(), sessionFrom(c), id, req)
	if err != nil {
		return fail(c, "patch_product_error", err)
	}
	return ok(c, http.StatusOK, p)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Catalog.DeleteProduct(c.Request().Context(), sessionFrom(c), id); err != nil {
		return fail(c, "delete_product_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
