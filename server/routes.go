package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds an HTTP method and path to a handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// Routes is the list of the server routes.
type Routes []Route

// ApiHandleFunctions groups the per-context API handlers.
type ApiHandleFunctions struct {
	CatalogAPI  CatalogAPI
	DeliveryAPI DeliveryAPI
	CartAPI     CartAPI
	OrderAPI    OrderAPI
}

// NewRouter returns a gin engine with all storefront routes registered.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine registers the storefront routes on an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

func defaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) Routes {
	return Routes{
		{
			Name:        "ListProducts",
			Method:      http.MethodGet,
			Pattern:     "/v1/products",
			HandlerFunc: handleFunctions.CatalogAPI.ListProducts,
		},
		{
			Name:        "GetProductById",
			Method:      http.MethodGet,
			Pattern:     "/v1/products/:productId",
			HandlerFunc: handleFunctions.CatalogAPI.GetProductById,
		},
		{
			Name:        "ListCategories",
			Method:      http.MethodGet,
			Pattern:     "/v1/categories",
			HandlerFunc: handleFunctions.CatalogAPI.ListCategories,
		},
		{
			Name:        "GetCategoryById",
			Method:      http.MethodGet,
			Pattern:     "/v1/categories/:categoryId",
			HandlerFunc: handleFunctions.CatalogAPI.GetCategoryById,
		},
		{
			Name:        "ListCategoryProducts",
			Method:      http.MethodGet,
			Pattern:     "/v1/categories/:categoryId/products",
			HandlerFunc: handleFunctions.CatalogAPI.ListCategoryProducts,
		},
		{
			Name:        "ListDeliveryPrices",
			Method:      http.MethodGet,
			Pattern:     "/v1/delivery/prices",
			HandlerFunc: handleFunctions.DeliveryAPI.ListPrices,
		},
		{
			Name:        "GetDeliveryPrice",
			Method:      http.MethodGet,
			Pattern:     "/v1/delivery/prices/:wilaya",
			HandlerFunc: handleFunctions.DeliveryAPI.GetPrice,
		},
		{
			Name:        "GetCart",
			Method:      http.MethodGet,
			Pattern:     "/v1/cart",
			HandlerFunc: handleFunctions.CartAPI.GetCart,
		},
		{
			Name:        "ClearCart",
			Method:      http.MethodDelete,
			Pattern:     "/v1/cart",
			HandlerFunc: handleFunctions.CartAPI.ClearCart,
		},
		{
			Name:        "AddCartItem",
			Method:      http.MethodPost,
			Pattern:     "/v1/cart/items",
			HandlerFunc: handleFunctions.CartAPI.AddItem,
		},
		{
			Name:        "UpdateCartItemQuantity",
			Method:      http.MethodPatch,
			Pattern:     "/v1/cart/items/:productId",
			HandlerFunc: handleFunctions.CartAPI.UpdateItemQuantity,
		},
		{
			Name:        "RemoveCartItem",
			Method:      http.MethodDelete,
			Pattern:     "/v1/cart/items/:productId",
			HandlerFunc: handleFunctions.CartAPI.RemoveItem,
		},
		{
			Name:        "SubmitOrder",
			Method:      http.MethodPost,
			Pattern:     "/v1/orders",
			HandlerFunc: handleFunctions.OrderAPI.SubmitOrder,
		},
		{
			Name:        "ListOrders",
			Method:      http.MethodGet,
			Pattern:     "/v1/orders",
			HandlerFunc: handleFunctions.OrderAPI.ListOrders,
		},
		{
			Name:        "GetProfile",
			Method:      http.MethodGet,
			Pattern:     "/v1/profile",
			HandlerFunc: handleFunctions.OrderAPI.GetProfile,
		},
		{
			Name:        "SaveProfile",
			Method:      http.MethodPut,
			Pattern:     "/v1/profile",
			HandlerFunc: handleFunctions.OrderAPI.SaveProfile,
		},
	}
}
