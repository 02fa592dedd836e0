package postgres

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hvmc/storefront/internal/domains/delivery/domain"
	"github.com/hvmc/storefront/internal/domains/delivery/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the wilaya delivery price table in PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&regionRecord{})
	}
	return repo
}

type regionRecord struct {
	ID            int64           `gorm:"primaryKey;column:id"`
	Name          string          `gorm:"column:name;uniqueIndex;size:100"`
	DeliveryPrice decimal.Decimal `gorm:"column:delivery_price;type:numeric(10,2)"`
}

func (regionRecord) TableName() string { return "wilaya_deliveries" }

func (r *Repository) List(ctx context.Context) ([]domain.Region, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []regionRecord
	if err := r.db.WithContext(ctx).Order("name").Find(&records).Error; err != nil {
		return nil, err
	}
	regions := make([]domain.Region, 0, len(records))
	for _, record := range records {
		regions = append(regions, record.toDomain())
	}
	return regions, nil
}

func (r *Repository) GetByName(ctx context.Context, name string) (*domain.Region, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record regionRecord
	if err := r.db.WithContext(ctx).First(&record, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	region := record.toDomain()
	return &region, nil
}

// ReplaceAll upserts the supplied table and removes rows for wilayas no
// longer present upstream.
func (r *Repository) ReplaceAll(ctx context.Context, regions []domain.Region) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		names := make([]string, 0, len(regions))
		for _, region := range regions {
			record := regionRecord{ID: region.ID, Name: region.Name, DeliveryPrice: region.DeliveryPrice}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"delivery_price"}),
			}).Create(&record).Error; err != nil {
				return err
			}
			names = append(names, region.Name)
		}
		if len(names) == 0 {
			return tx.Where("1 = 1").Delete(&regionRecord{}).Error
		}
		return tx.Where("name NOT IN ?", names).Delete(&regionRecord{}).Error
	})
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres delivery repository not configured")
	}
	return nil
}

func (record regionRecord) toDomain() domain.Region {
	return domain.Region{ID: record.ID, Name: record.Name, DeliveryPrice: record.DeliveryPrice}
}
