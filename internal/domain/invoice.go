package domain

import (
	"gorm.io/datatypes"
)

// 状态枚举：只接受这两个值
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

type Invoice struct {
	ID         string         `gorm:"primaryKey;size:36" json:"id"`
	CustomerID string         `gorm:"index;size:36;not null" json:"customerId"`
	Amount     int64          `gorm:"not null" json:"amount"` // 以分存储，避免浮点误差
	Status     string         `gorm:"size:16;not null;index" json:"status"`
	Date       datatypes.Date `gorm:"type:date" json:"-"` // 入库时由服务端赋值，之后不可变
}

func (Invoice) TableName() string { return "invoices" }
