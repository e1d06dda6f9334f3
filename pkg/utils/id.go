package utils

import "github.com/google/uuid"

// NewID 36 位 uuid 主键
func NewID() string { return uuid.NewString() }
