package domain

import (
	"context"
	"time"
)

// ListQuery 列表页通用入参（搜索 + 分页）
type ListQuery struct {
	Query       string
	Offset      int
	Limit       int
	WithDeleted bool // 仅客户列表使用
}

// InvoiceRow 发票列表行（联表带出客户信息）
type InvoiceRow struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customerId"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	ImageURL      string    `json:"imageUrl"`
	Amount        int64     `json:"amount"`
	Status        string    `json:"status"`
	Date          time.Time `json:"-"`
}

type InvoiceRepository interface {
	Create(ctx context.Context, inv *Invoice) error
	// Update 返回受影响行数；0 行表示 id 不存在
	Update(ctx context.Context, inv *Invoice) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	FindByID(ctx context.Context, id string) (*Invoice, error)
	List(ctx context.Context, q ListQuery) ([]InvoiceRow, int64, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) (int64, error)
	// SoftDelete / Disable 只置位，不清除对方标记
	SoftDelete(ctx context.Context, id string) (int64, error)
	Disable(ctx context.Context, id string) (int64, error)
	FindByID(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context, q ListQuery) ([]Customer, int64, error)
}
