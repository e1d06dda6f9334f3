package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"go-invoice-admin/internal/domain"
)

type CustomerRepo struct{ db *gorm.DB }

func NewCustomerRepo(db *gorm.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CustomerRepo) Update(ctx context.Context, c *domain.Customer) (int64, error) {
	// image_url 每次整体覆盖（没传新图就清空），与表单语义一致
	res := r.db.WithContext(ctx).Model(&domain.Customer{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"name":      c.Name,
			"email":     c.Email,
			"image_url": c.ImageURL,
		})
	return res.RowsAffected, res.Error
}

func (r *CustomerRepo) SoftDelete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Customer{}).
		Where("id = ?", id).
		Update("is_deleted", true)
	return res.RowsAffected, res.Error
}

func (r *CustomerRepo) Disable(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Customer{}).
		Where("id = ?", id).
		Update("is_disabled", true)
	return res.RowsAffected, res.Error
}

func (r *CustomerRepo) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *CustomerRepo) List(ctx context.Context, q domain.ListQuery) ([]domain.Customer, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Customer{})
	if !q.WithDeleted {
		tx = tx.Where("is_deleted = ?", false)
	}
	if s := strings.TrimSpace(q.Query); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cs []domain.Customer
	err := tx.Order("name ASC").Limit(q.Limit).Offset(q.Offset).Find(&cs).Error
	return cs, total, err
}
