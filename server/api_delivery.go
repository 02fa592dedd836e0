package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	deliveryports "github.com/hvmc/storefront/internal/domains/delivery/ports"
)

// DeliveryAPI wires HTTP transport with the delivery bounded context service.
type DeliveryAPI struct {
	service deliveryports.Service
}

// NewDeliveryAPI creates a DeliveryAPI backed by the provided service.
func NewDeliveryAPI(service deliveryports.Service) DeliveryAPI {
	return DeliveryAPI{service: service}
}

type wilayaPrice struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	DeliveryPrice string `json:"delivery_price"`
}

// Get /v1/delivery/prices
// Lists the wilaya delivery price table
func (api *DeliveryAPI) ListPrices(c *gin.Context) {
	regions, err := api.service.Regions(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]wilayaPrice, 0, len(regions))
	for _, region := range regions {
		out = append(out, wilayaPrice{
			ID:            region.ID,
			Name:          region.Name,
			DeliveryPrice: region.DeliveryPrice.StringFixed(2),
		})
	}
	c.JSON(http.StatusOK, out)
}

// Get /v1/delivery/prices/:wilaya
// Resolves the delivery fee for one wilaya. Unknown wilayas resolve to a
// zero fee rather than an error, matching the checkout behaviour.
func (api *DeliveryAPI) GetPrice(c *gin.Context) {
	wilaya := c.Param("wilaya")
	fee, err := api.service.FeeFor(c.Request.Context(), wilaya)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, wilayaPrice{Name: wilaya, DeliveryPrice: fee.StringFixed(2)})
}
