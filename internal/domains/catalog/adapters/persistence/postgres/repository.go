package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hvmc/storefront/internal/domains/catalog/domain"
	"github.com/hvmc/storefront/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the product catalog in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&categoryRecord{}, &productRecord{}, &productImageRecord{})
	}
	return repo
}

type categoryRecord struct {
	ID          int64  `gorm:"primaryKey;column:id"`
	Name        string `gorm:"column:name;uniqueIndex;size:100"`
	Description string `gorm:"column:description"`
	ImageURL    string `gorm:"column:image_url"`
}

func (categoryRecord) TableName() string { return "categories" }

type productRecord struct {
	ID          int64                `gorm:"primaryKey;column:id"`
	CategoryID  int64                `gorm:"column:category_id;index"`
	Name        string               `gorm:"column:name;size:255;index"`
	Description string               `gorm:"column:description"`
	Price       decimal.Decimal      `gorm:"column:price;type:numeric(10,2)"`
	MetrePrice  decimal.Decimal      `gorm:"column:metre_price;type:numeric(10,2)"`
	WeightKG    decimal.Decimal      `gorm:"column:weight_kg;type:numeric(8,2)"`
	Available   bool                 `gorm:"column:is_available;index"`
	ImageURL    string               `gorm:"column:image_url"`
	Tags        pq.StringArray       `gorm:"column:tags;type:text[]"`
	Images      []productImageRecord `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time            `gorm:"column:created_at"`
	UpdatedAt   time.Time            `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

type productImageRecord struct {
	ID        int64  `gorm:"primaryKey;column:id"`
	ProductID int64  `gorm:"column:product_id;index"`
	URL       string `gorm:"column:url"`
	Color     string `gorm:"column:color;size:50"`
	ColorName string `gorm:"column:color_name;size:50"`
}

func (productImageRecord) TableName() string { return "product_images" }

// SaveProduct inserts or updates a product and replaces its image variants.
func (r *Repository) SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toProductRecord(product)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		images := record.Images
		record.Images = nil
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"category_id":  record.CategoryID,
				"name":         record.Name,
				"description":  record.Description,
				"price":        record.Price,
				"metre_price":  record.MetrePrice,
				"weight_kg":    record.WeightKG,
				"is_available": record.Available,
				"image_url":    record.ImageURL,
				"tags":         record.Tags,
				"updated_at":   gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", record.ID).Delete(&productImageRecord{}).Error; err != nil {
			return err
		}
		for i := range images {
			images[i].ProductID = record.ID
			images[i].ID = 0
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetProduct(ctx, record.ID)
}

// GetProduct fetches a product with its image variants.
func (r *Repository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).Preload("Images").First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrProductNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListProducts returns products, optionally filtered by category.
func (r *Repository) ListProducts(ctx context.Context, categoryID int64) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Preload("Images").Order("name")
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	var records []productRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainProducts(records), nil
}

// SearchProducts matches the query against name and description.
func (r *Repository) SearchProducts(ctx context.Context, query string) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	pattern := "%" + query + "%"
	var records []productRecord
	if err := r.db.WithContext(ctx).Preload("Images").
		Where("name ILIKE ? OR description ILIKE ? OR array_to_string(tags, ' ') ILIKE ?", pattern, pattern, pattern).
		Order("name").Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainProducts(records), nil
}

// DeleteProduct removes a product and its image variants.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&productImageRecord{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&productRecord{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrProductNotFound
		}
		return nil
	})
}

// SaveCategory inserts or updates a category.
func (r *Repository) SaveCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if category == nil {
		return nil, errors.New("category is nil")
	}
	record := categoryRecord{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		ImageURL:    category.ImageURL,
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"name":        record.Name,
			"description": record.Description,
			"image_url":   record.ImageURL,
		}),
	}).Create(&record).Error; err != nil {
		return nil, err
	}
	out := record.toDomain()
	return &out, nil
}

// GetCategory fetches a single category.
func (r *Repository) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record categoryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrCategoryNotFound
		}
		return nil, err
	}
	category := record.toDomain()
	return &category, nil
}

// ListCategories returns all categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []categoryRecord
	if err := r.db.WithContext(ctx).Order("name").Find(&records).Error; err != nil {
		return nil, err
	}
	categories := make([]*domain.Category, 0, len(records))
	for i := range records {
		category := records[i].toDomain()
		categories = append(categories, &category)
	}
	return categories, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toProductRecord(product *domain.Product) productRecord {
	images := make([]productImageRecord, 0, len(product.Images))
	for _, img := range product.Images {
		images = append(images, productImageRecord{
			ProductID: product.ID,
			URL:       img.URL,
			Color:     img.Color,
			ColorName: img.ColorName,
		})
	}
	return productRecord{
		ID:          product.ID,
		CategoryID:  product.CategoryID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		MetrePrice:  product.MetrePrice,
		WeightKG:    product.WeightKG,
		Available:   product.Available,
		ImageURL:    product.ImageURL,
		Tags:        pq.StringArray(product.Tags),
		Images:      images,
	}
}

func toDomainProducts(records []productRecord) []*domain.Product {
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products
}

func (record productRecord) toDomain() *domain.Product {
	images := make([]domain.ProductImage, 0, len(record.Images))
	for _, img := range record.Images {
		images = append(images, domain.ProductImage{
			ID:        img.ID,
			ProductID: img.ProductID,
			URL:       img.URL,
			Color:     img.Color,
			ColorName: img.ColorName,
		})
	}
	return &domain.Product{
		ID:          record.ID,
		CategoryID:  record.CategoryID,
		Name:        record.Name,
		Description: record.Description,
		Price:       record.Price,
		MetrePrice:  record.MetrePrice,
		WeightKG:    record.WeightKG,
		Available:   record.Available,
		ImageURL:    record.ImageURL,
		Tags:        []string(record.Tags),
		Images:      images,
	}
}

func (record categoryRecord) toDomain() domain.Category {
	return domain.Category{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		ImageURL:    record.ImageURL,
	}
}
