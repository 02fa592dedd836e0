package storefrontserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartapp "github.com/hvmc/storefront/internal/domains/cart/application"
	catalogapp "github.com/hvmc/storefront/internal/domains/catalog/application"
	catalogports "github.com/hvmc/storefront/internal/domains/catalog/ports"
	checkoutapp "github.com/hvmc/storefront/internal/domains/checkout/application"
	checkoutports "github.com/hvmc/storefront/internal/domains/checkout/ports"
	deliveryports "github.com/hvmc/storefront/internal/domains/delivery/ports"
	apierrors "github.com/hvmc/storefront/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError preserves the existing call sites while returning RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusBadGateway:
		problem = apierrors.ErrBadGateway.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

// respondServiceError translates domain and application failures from any
// bounded context into problem responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, catalogports.ErrProductNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("product", c.Param("productId")))
	case errors.Is(err, catalogports.ErrCategoryNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("category", c.Param("categoryId")))
	case errors.Is(err, deliveryports.ErrNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("wilaya", c.Param("wilaya")))
	case errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, cartapp.ErrInvalidInput),
		errors.Is(err, checkoutapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondDispatchError(c, err)
	}
}

// respondDispatchError maps the typed dispatch surface: upstream rejection
// becomes 422 with the upstream field messages, everything else 502.
func respondDispatchError(c *gin.Context, err error) {
	dispatchErr, ok := checkoutports.AsDispatchError(err)
	if !ok {
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
		return
	}
	switch dispatchErr.Kind {
	case checkoutports.DispatchRejected:
		problem := apierrors.ErrUnprocessable.WithDetail("order rejected by the fulfilment shop")
		if len(dispatchErr.Fields) > 0 {
			problem = problem.WithExtension("fields", dispatchErr.Fields)
		}
		respondProblem(c, problem)
	case checkoutports.DispatchEndpointMissing:
		respondProblem(c, apierrors.ErrBadGateway.WithDetail("fulfilment order endpoint not found"))
	default:
		respondProblem(c, apierrors.ErrBadGateway.WithDetail("fulfilment shop unavailable"))
	}
}
