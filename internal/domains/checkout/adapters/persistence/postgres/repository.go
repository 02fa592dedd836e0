package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hvmc/storefront/internal/domains/checkout/domain"
	"github.com/hvmc/storefront/internal/domains/checkout/ports"
)

var _ ports.History = (*Repository)(nil)

// Repository persists submitted orders in PostgreSQL using GORM. It backs
// the order log when a DSN is configured and the durable dispatch
// activities on the worker.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{}, &orderItemRecord{})
	}
	return repo
}

type orderRecord struct {
	ID            string            `gorm:"primaryKey;column:id;size:36"`
	GuestName     string            `gorm:"column:guest_name;size:255"`
	GuestPhone    string            `gorm:"column:guest_phone;size:20"`
	GuestEmail    string            `gorm:"column:guest_email;size:255;index"`
	GuestWilaya   string            `gorm:"column:guest_wilaya;size:100"`
	GuestAddress  string            `gorm:"column:guest_address"`
	DeliveryPrice decimal.Decimal   `gorm:"column:delivery_price;type:numeric(10,2)"`
	ProductTotal  decimal.Decimal   `gorm:"column:product_total;type:numeric(12,2)"`
	GrandTotal    decimal.Decimal   `gorm:"column:grand_total;type:numeric(12,2)"`
	IsSent        bool              `gorm:"column:is_sent"`
	CreatedAt     time.Time         `gorm:"column:created_at;index"`
	Items         []orderItemRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	OrderID     string          `gorm:"column:order_id;size:36;index"`
	ProductID   string          `gorm:"column:product_id;size:36"`
	ProductName string          `gorm:"column:product_name;size:255"`
	Quantity    int             `gorm:"column:quantity"`
	Color       string          `gorm:"column:color;size:100"`
	Length      decimal.Decimal `gorm:"column:longueur;type:numeric(10,2)"`
	MetrePrice  decimal.Decimal `gorm:"column:metre_price;type:numeric(10,2)"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2)"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Calculation string          `gorm:"column:calculation;size:255"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Append inserts the order with its items. Re-appending the same order ID
// updates the sent flag and leaves the items untouched, which makes the
// dispatch activity safe to retry.
func (r *Repository) Append(ctx context.Context, order *domain.Order) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if order == nil {
		return errors.New("order is nil")
	}
	record := toRecord(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := record.Items
		record.Items = nil
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_sent"}),
		}).Create(&record)
		if result.Error != nil {
			return result.Error
		}
		var existing int64
		if err := tx.Model(&orderItemRecord{}).Where("order_id = ?", record.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 || len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// List returns all orders newest first, items included.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// MarkSent flags an already persisted order as confirmed upstream.
func (r *Repository) MarkSent(ctx context.Context, orderID string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("id = ?", orderID).
		Update("is_sent", true).Error
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	items := make([]orderItemRecord, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemRecord{
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			Color:       item.Color,
			Length:      item.Length,
			MetrePrice:  item.MetrePrice,
			UnitPrice:   item.UnitPrice,
			Price:       item.Price,
			Calculation: item.Calculation,
		})
	}
	return orderRecord{
		ID:            order.ID,
		GuestName:     order.Customer.Name,
		GuestPhone:    order.Customer.Phone,
		GuestEmail:    order.Customer.Email,
		GuestWilaya:   order.Customer.Wilaya,
		GuestAddress:  order.Customer.Address,
		DeliveryPrice: order.DeliveryPrice,
		ProductTotal:  order.ProductTotal,
		GrandTotal:    order.GrandTotal,
		IsSent:        order.Sent,
		CreatedAt:     order.CreatedAt,
		Items:         items,
	}
}

func (record orderRecord) toDomain() *domain.Order {
	items := make([]domain.Item, 0, len(record.Items))
	for _, item := range record.Items {
		items = append(items, domain.Item{
			ProductID:   item.ProductID,
			Name:        item.ProductName,
			Quantity:    item.Quantity,
			Color:       item.Color,
			Length:      item.Length,
			MetrePrice:  item.MetrePrice,
			UnitPrice:   item.UnitPrice,
			Price:       item.Price,
			Calculation: item.Calculation,
		})
	}
	return &domain.Order{
		ID: record.ID,
		Customer: domain.Customer{
			Name:    record.GuestName,
			Phone:   record.GuestPhone,
			Email:   record.GuestEmail,
			Wilaya:  record.GuestWilaya,
			Address: record.GuestAddress,
		},
		Items:         items,
		DeliveryPrice: record.DeliveryPrice,
		ProductTotal:  record.ProductTotal,
		GrandTotal:    record.GrandTotal,
		Sent:          record.IsSent,
		CreatedAt:     record.CreatedAt,
	}
}
