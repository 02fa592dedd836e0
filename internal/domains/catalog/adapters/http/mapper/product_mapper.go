package mapper

import (
	catalogdomain "github.com/hvmc/storefront/internal/domains/catalog/domain"
	"github.com/hvmc/storefront/internal/domains/pricing"
)

// Product is the transport-layer shape served to storefront clients.
// Decimal amounts travel as strings with two fractional digits.
type Product struct {
	ID          int64          `json:"id"`
	Category    int64          `json:"category"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       string         `json:"price"`
	MetrePrice  string         `json:"metre_price"`
	WeightKG    string         `json:"poids"`
	IsAvailable bool           `json:"is_available"`
	Image       string         `json:"image"`
	Images      []ProductImage `json:"images"`
	Tags        []string       `json:"tags,omitempty"`
}

// ProductImage is one colour variant of a product.
type ProductImage struct {
	ID        int64  `json:"id"`
	Image     string `json:"image"`
	Color     string `json:"color"`
	ColorName string `json:"color_name"`
}

// Category is the transport-layer category shape.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// FromDomainProduct converts a domain product to the transport representation.
func FromDomainProduct(product *catalogdomain.Product) Product {
	if product == nil {
		return Product{}
	}
	images := make([]ProductImage, 0, len(product.Images))
	for _, img := range product.Images {
		images = append(images, ProductImage{
			ID:        img.ID,
			Image:     img.URL,
			Color:     img.Color,
			ColorName: img.ColorName,
		})
	}
	return Product{
		ID:          product.ID,
		Category:    product.CategoryID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price.StringFixed(2),
		MetrePrice:  product.MetrePrice.StringFixed(2),
		WeightKG:    product.WeightKG.StringFixed(2),
		IsAvailable: product.Available,
		Image:       product.ImageURL,
		Images:      images,
		Tags:        product.Tags,
	}
}

// ToDomainProduct converts a transport product into the catalog domain model.
// Price fields are normalized, so formatted strings are accepted.
func ToDomainProduct(product Product) *catalogdomain.Product {
	images := make([]catalogdomain.ProductImage, 0, len(product.Images))
	for _, img := range product.Images {
		images = append(images, catalogdomain.ProductImage{
			ID:        img.ID,
			ProductID: product.ID,
			URL:       img.Image,
			Color:     img.Color,
			ColorName: img.ColorName,
		})
	}
	return &catalogdomain.Product{
		ID:          product.ID,
		CategoryID:  product.Category,
		Name:        product.Name,
		Description: product.Description,
		Price:       pricing.Normalize(product.Price),
		MetrePrice:  pricing.Normalize(product.MetrePrice),
		WeightKG:    pricing.Normalize(product.WeightKG),
		Available:   product.IsAvailable,
		ImageURL:    product.Image,
		Images:      images,
		Tags:        product.Tags,
	}
}

// FromDomainCategory converts a domain category to the transport representation.
func FromDomainCategory(category *catalogdomain.Category) Category {
	if category == nil {
		return Category{}
	}
	return Category{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Image:       category.ImageURL,
	}
}

// ToDomainCategory converts a transport category into the catalog domain model.
func ToDomainCategory(category Category) *catalogdomain.Category {
	return &catalogdomain.Category{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		ImageURL:    category.Image,
	}
}
