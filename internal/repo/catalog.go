package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/agrilink/internal/models"
)

type ProductFilter struct {
	CategoryID *uuid.UUID
	RegionID   *uuid.UUID
	Search     string
	MinPrice   *int64
	MaxPrice   *int64
	IsBio      bool
}

func (f ProductFilter) apply(db *gorm.DB) *gorm.DB {
	q := db.Where("is_available = ? AND stock_quantity > ?", true, 0)
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?)", like, like)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.IsBio {
		q = q.Where("is_bio = ?", true)
	}
	if f.RegionID != nil {
		sub := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.ProducerProfile{}).
			Select("id").
			Where("region_id = ?", *f.RegionID)
		q = q.Where("producer_id IN (?)", sub)
	}
	return q
}

func (r *GormRepo) ListProducts(ctx context.Context, f ProductFilter, offset, limit int) (int64, []models.Product, error) {
	db := r.DB.WithContext(ctx)

	var total int64
	if err := f.apply(db.Model(&models.Product{})).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, limit)
	if err := f.apply(db.Model(&models.Product{})).
		Preload("Producer").
		Preload("Category").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := r.DB.WithContext(ctx).
		Preload("Producer").
		Preload("Producer.Region").
		Preload("Category").
		Where("id = ?", id).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProductsByIDs keeps the order of ids and skips ids with no row or that
// cannot be bought right now.
func (r *GormRepo) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	var found []models.Product
	if err := r.DB.WithContext(ctx).
		Preload("Producer").
		Preload("Category").
		Where("id IN ?", ids).
		Where("is_available = ? AND stock_quantity > ?", true, 0).
		Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	out := make([]models.Product, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Omit("Producer", "Category").Create(p).Error
}

// PatchProduct writes only the named columns of changes, so concurrent stock
// decrements on other columns are kept.
func (r *GormRepo) PatchProduct(ctx context.Context, id uuid.UUID, changes *models.Product, columns []string) (*models.Product, error) {
	if len(columns) > 0 {
		changes.UpdatedAt = time.Now().UTC()
		res := r.DB.WithContext(ctx).
			Model(&models.Product{}).
			Where("id = ?", id).
			Select(append(columns, "updated_at")).
			Omit(clause.Associations).
			Updates(changes)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetProduct(ctx, id)
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
