package storefrontserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	cartdomain "github.com/hvmc/storefront/internal/domains/cart/domain"
	cartports "github.com/hvmc/storefront/internal/domains/cart/ports"
	checkoutdomain "github.com/hvmc/storefront/internal/domains/checkout/domain"
	checkoutports "github.com/hvmc/storefront/internal/domains/checkout/ports"
)

// OrderAPI wires HTTP transport with the checkout bounded context service.
// Submitting pulls the live cart, so the two services travel together here.
type OrderAPI struct {
	service checkoutports.Service
	cart    cartports.Service
}

// NewOrderAPI creates an OrderAPI backed by the provided services.
func NewOrderAPI(service checkoutports.Service, cart cartports.Service) OrderAPI {
	return OrderAPI{service: service, cart: cart}
}

type customerPayload struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Wilaya  string `json:"wilaya"`
	Address string `json:"address"`
}

type orderView struct {
	ID            string          `json:"id"`
	Customer      customerPayload `json:"customer"`
	Items         []orderItemView `json:"items"`
	DeliveryPrice string          `json:"delivery_price"`
	ProductTotal  string          `json:"product_total"`
	GrandTotal    string          `json:"total_price"`
	CreatedAt     time.Time       `json:"created_at"`
	Sent          bool            `json:"is_sent"`
}

type orderItemView struct {
	ProductID   string `json:"product"`
	Name        string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Color       string `json:"color,omitempty"`
	Length      string `json:"length,omitempty"`
	MetrePrice  string `json:"metre_price,omitempty"`
	UnitPrice   string `json:"unit_price"`
	Price       string `json:"price"`
	Calculation string `json:"calculation,omitempty"`
}

type submitRequest struct {
	Customer customerPayload `json:"customer"`
	// Items overrides the live cart when present; omitted means "order
	// what is in the cart".
	Items []cartItem `json:"items,omitempty"`
}

// Post /v1/orders
// Assembles the order from the cart, records it locally, dispatches it
// upstream, and clears the cart on success.
func (api *OrderAPI) SubmitOrder(c *gin.Context) {
	var payload submitRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	items, err := api.resolveItems(c, payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	input := checkoutports.SubmitInput{
		Customer: toDomainCustomer(payload.Customer),
		Items:    items,
	}
	order, err := api.service.Submit(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(payload.Items) == 0 {
		// dispatched orders empty the cart, mirroring the storefront flow
		if err := api.cart.Clear(c.Request.Context()); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	c.JSON(http.StatusCreated, fromDomainOrder(order))
}

// Get /v1/orders
// Returns the local order history scoped to the stored profile email
func (api *OrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.Orders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]orderView, 0, len(orders))
	for _, order := range orders {
		out = append(out, fromDomainOrder(order))
	}
	c.JSON(http.StatusOK, out)
}

// Get /v1/profile
// Returns the stored checkout-prefill profile
func (api *OrderAPI) GetProfile(c *gin.Context) {
	profile, err := api.service.Profile(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusOK, customerPayload{})
		return
	}
	c.JSON(http.StatusOK, fromDomainCustomer(*profile))
}

// Put /v1/profile
// Stores the checkout-prefill profile
func (api *OrderAPI) SaveProfile(c *gin.Context) {
	var payload customerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := api.service.SaveProfile(c.Request.Context(), toDomainCustomer(payload)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (api *OrderAPI) resolveItems(c *gin.Context, payload submitRequest) ([]cartdomain.LineItem, error) {
	if len(payload.Items) > 0 {
		items := make([]cartdomain.LineItem, 0, len(payload.Items))
		for _, item := range payload.Items {
			items = append(items, toDomainItem(item))
		}
		return items, nil
	}
	return api.cart.Items(c.Request.Context())
}

func toDomainCustomer(payload customerPayload) checkoutdomain.Customer {
	return checkoutdomain.Customer{
		Name:    payload.Name,
		Phone:   payload.Phone,
		Email:   payload.Email,
		Wilaya:  payload.Wilaya,
		Address: payload.Address,
	}
}

func fromDomainCustomer(customer checkoutdomain.Customer) customerPayload {
	return customerPayload{
		Name:    customer.Name,
		Phone:   customer.Phone,
		Email:   customer.Email,
		Wilaya:  customer.Wilaya,
		Address: customer.Address,
	}
}

func fromDomainOrder(order *checkoutdomain.Order) orderView {
	if order == nil {
		return orderView{}
	}
	items := make([]orderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		view := orderItemView{
			ProductID:   item.ProductID,
			Name:        item.Name,
			Quantity:    item.Quantity,
			Color:       item.Color,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Price:       item.Price.StringFixed(2),
			Calculation: item.Calculation,
		}
		if item.MetrePrice.IsPositive() {
			view.MetrePrice = item.MetrePrice.StringFixed(2)
			view.Length = item.Length.String()
		}
		items = append(items, view)
	}
	return orderView{
		ID:            order.ID,
		Customer:      fromDomainCustomer(order.Customer),
		Items:         items,
		DeliveryPrice: order.DeliveryPrice.StringFixed(2),
		ProductTotal:  order.ProductTotal.StringFixed(2),
		GrandTotal:    order.GrandTotal.StringFixed(2),
		CreatedAt:     order.CreatedAt,
		Sent:          order.Sent,
	}
}
