package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"go-invoice-admin/internal/domain"
)

type InvoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepo(db *gorm.DB) *InvoiceRepo { return &InvoiceRepo{db: db} }

func (r *InvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *InvoiceRepo) Update(ctx context.Context, inv *domain.Invoice) (int64, error) {
	// map 形式保证零值也能写入
	res := r.db.WithContext(ctx).Model(&domain.Invoice{}).
		Where("id = ?", inv.ID).
		Updates(map[string]any{
			"customer_id": inv.CustomerID,
			"amount":      inv.Amount,
			"status":      inv.Status,
		})
	return res.RowsAffected, res.Error
}

func (r *InvoiceRepo) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Invoice{})
	return res.RowsAffected, res.Error
}

func (r *InvoiceRepo) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &inv, err
}

func (r *InvoiceRepo) List(ctx context.Context, q domain.ListQuery) ([]domain.InvoiceRow, int64, error) {
	tx := r.db.WithContext(ctx).Table("invoices").
		Joins("JOIN customers ON customers.id = invoices.customer_id")

	if s := strings.TrimSpace(q.Query); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("customers.name LIKE ? OR customers.email LIKE ? OR invoices.status LIKE ?", like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []domain.InvoiceRow
	err := tx.
		Select("invoices.id, invoices.customer_id, invoices.amount, invoices.status, invoices.date, " +
			"customers.name AS customer_name, customers.email AS customer_email, customers.image_url AS image_url").
		Order("invoices.date DESC, invoices.id DESC").
		Limit(q.Limit).Offset(q.Offset).
		Scan(&rows).Error
	return rows, total, err
}
