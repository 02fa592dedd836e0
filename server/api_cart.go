package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	cartdomain "github.com/hvmc/storefront/internal/domains/cart/domain"
	cartports "github.com/hvmc/storefront/internal/domains/cart/ports"
	"github.com/hvmc/storefront/internal/domains/pricing"
)

// CartAPI wires HTTP transport with the cart bounded context service.
type CartAPI struct {
	service cartports.Service
}

// NewCartAPI creates a CartAPI backed by the provided service.
func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{service: service}
}

// cartItem is the transport shape of a cart entry. Prices travel as
// strings and are normalized on the way in, so formatted values like
// "1 299,00 DA" are accepted.
type cartItem struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	UnitPrice   string `json:"unit_price"`
	MetrePrice  string `json:"metre_price,omitempty"`
	Length      string `json:"length,omitempty"`
	Quantity    int    `json:"quantity"`
	Color       string `json:"color,omitempty"`
	Image       string `json:"image,omitempty"`
	Weight      string `json:"weight,omitempty"`
	Price       string `json:"price,omitempty"`
	Calculation string `json:"calculation,omitempty"`
	Purchasable bool   `json:"purchasable"`
}

type cartView struct {
	Items []cartItem `json:"items"`
	Count int        `json:"count"`
	Total string     `json:"total"`
}

type quantityUpdate struct {
	Quantity int `json:"quantity"`
}

// Get /v1/cart
// Returns the live cart with computed line prices
func (api *CartAPI) GetCart(c *gin.Context) {
	api.respondCart(c)
}

// Post /v1/cart/items
// Adds an item, merging with an existing (product, colour, length) entry
func (api *CartAPI) AddItem(c *gin.Context) {
	var payload cartItem
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := api.service.Add(c.Request.Context(), toDomainItem(payload)); err != nil {
		respondServiceError(c, err)
		return
	}
	api.respondCart(c)
}

// Patch /v1/cart/items/:productId
// Sets the quantity for every entry of the product; zero removes it
func (api *CartAPI) UpdateItemQuantity(c *gin.Context) {
	var payload quantityUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := api.service.UpdateQuantity(c.Request.Context(), c.Param("productId"), payload.Quantity); err != nil {
		respondServiceError(c, err)
		return
	}
	api.respondCart(c)
}

// Delete /v1/cart/items/:productId
// Removes every colour and length variant of the product
func (api *CartAPI) RemoveItem(c *gin.Context) {
	if err := api.service.Remove(c.Request.Context(), c.Param("productId")); err != nil {
		respondServiceError(c, err)
		return
	}
	api.respondCart(c)
}

// Delete /v1/cart
// Empties the cart
func (api *CartAPI) ClearCart(c *gin.Context) {
	if err := api.service.Clear(c.Request.Context()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (api *CartAPI) respondCart(c *gin.Context) {
	items, err := api.service.Items(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	view := cartView{Items: make([]cartItem, 0, len(items))}
	total := decimal.Zero
	for _, item := range items {
		view.Items = append(view.Items, fromDomainItem(item))
		view.Count += item.Quantity
		total = total.Add(item.Price())
	}
	view.Total = total.StringFixed(2)
	c.JSON(http.StatusOK, view)
}

func toDomainItem(payload cartItem) cartdomain.LineItem {
	return cartdomain.LineItem{
		ProductID:  payload.ProductID,
		Name:       payload.Name,
		UnitPrice:  pricing.Normalize(payload.UnitPrice),
		MetrePrice: pricing.Normalize(payload.MetrePrice),
		Length:     pricing.Normalize(payload.Length),
		Quantity:   payload.Quantity,
		Color:      payload.Color,
		Image:      payload.Image,
		Weight:     pricing.Normalize(payload.Weight),
	}
}

func fromDomainItem(item cartdomain.LineItem) cartItem {
	quote := item.Quote()
	out := cartItem{
		ProductID:   item.ProductID,
		Name:        item.Name,
		UnitPrice:   item.UnitPrice.StringFixed(2),
		Quantity:    item.Quantity,
		Color:       item.Color,
		Image:       item.Image,
		Price:       quote.Total().StringFixed(2),
		Calculation: quote.Label(),
		Purchasable: quote.Purchasable(),
	}
	if item.MetrePrice.IsPositive() {
		out.MetrePrice = item.MetrePrice.StringFixed(2)
	}
	if item.Length.IsPositive() {
		out.Length = item.Length.String()
	}
	if item.Weight.IsPositive() {
		out.Weight = item.Weight.String()
	}
	return out
}
