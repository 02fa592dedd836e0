// Package storefrontserver wires HTTP transport with the storefront
// bounded contexts.
package storefrontserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/hvmc/storefront/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/hvmc/storefront/internal/domains/catalog/ports"
)

// CatalogAPI wires HTTP transport with the catalog bounded context service.
type CatalogAPI struct {
	service catalogports.Service
}

// NewCatalogAPI creates a CatalogAPI backed by the provided service.
func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Get /v1/products
// Lists the catalog, optionally filtered with ?search=
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	query := c.Query("search")
	products, err := api.service.SearchProducts(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]cataloghttpmapper.Product, 0, len(products))
	for _, product := range products {
		out = append(out, cataloghttpmapper.FromDomainProduct(product))
	}
	c.JSON(http.StatusOK, out)
}

// Get /v1/products/:productId
// Find product by ID
func (api *CatalogAPI) GetProductById(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(product))
}

// Get /v1/categories
// Lists the browsing categories
func (api *CatalogAPI) ListCategories(c *gin.Context) {
	categories, err := api.service.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]cataloghttpmapper.Category, 0, len(categories))
	for _, category := range categories {
		out = append(out, cataloghttpmapper.FromDomainCategory(category))
	}
	c.JSON(http.StatusOK, out)
}

// Get /v1/categories/:categoryId
// Find category by ID
func (api *CatalogAPI) GetCategoryById(c *gin.Context) {
	id, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}
	category, err := api.service.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainCategory(category))
}

// Get /v1/categories/:categoryId/products
// Lists the products in one category
func (api *CatalogAPI) ListCategoryProducts(c *gin.Context) {
	id, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}
	products, err := api.service.ListProducts(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]cataloghttpmapper.Product, 0, len(products))
	for _, product := range products {
		out = append(out, cataloghttpmapper.FromDomainProduct(product))
	}
	c.JSON(http.StatusOK, out)
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, errors.New("invalid "+name))
		return 0, false
	}
	return id, true
}
