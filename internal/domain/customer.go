package domain

type Customer struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	Name     string `gorm:"size:128;not null" json:"name"` // "First Last"
	Email    string `gorm:"size:255;not null;index" json:"email"`
	ImageURL string `gorm:"size:255" json:"imageUrl"`

	// 软删 / 停用是两个独立的单向开关，没有恢复操作
	IsDeleted  bool `gorm:"not null;default:false" json:"isDeleted"`
	IsDisabled bool `gorm:"not null;default:false" json:"isDisabled"`
}

func (Customer) TableName() string { return "customers" }
