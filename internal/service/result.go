package service

import (
	"context"

	"go-invoice-admin/internal/validate"
)

// 成功后的跳转目标（画布层据此跳回列表页）
const (
	InvoicesPath  = "/dashboard/invoices"
	CustomersPath = "/dashboard/customers"
)

// 列表缓存 key 前缀，写成功后整组失效
const (
	InvoiceCachePrefix  = "invoices:"
	CustomerCachePrefix = "customers:"
)

// Result 表单层拿到的统一结果：
// 校验失败带逐字段消息，成功带跳转路径；预期失败一律不 panic
type Result struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Errors   validate.Errors `json:"errors,omitempty"`
	Redirect string          `json:"redirect,omitempty"`
}

func ok(msg, redirect string) Result {
	return Result{Success: true, Message: msg, Redirect: redirect}
}

func fail(msg string) Result {
	return Result{Success: false, Message: msg}
}

func invalid(errs validate.Errors) Result {
	return Result{Success: false, Message: "Could not validate form", Errors: errs}
}

// Invalidator 写成功后把受影响的列表视图标脏
type Invalidator interface {
	InvalidatePrefix(ctx context.Context, prefix string) error
}
