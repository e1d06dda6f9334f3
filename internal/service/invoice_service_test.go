package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"go-invoice-admin/internal/testutil"
)

func newInvoiceService(repo *testutil.MemInvoiceRepo, inval *testutil.RecInvalidator) *InvoiceService {
	return NewInvoiceService(repo, inval, zap.NewNop())
}

func TestCreateInvoiceSuccess(t *testing.T) {
	repo := testutil.NewMemInvoiceRepo()
	inval := &testutil.RecInvalidator{}
	svc := newInvoiceService(repo, inval)

	res := svc.Create(context.Background(), InvoiceForm{
		CustomerID: "c1", Amount: "50", Status: "paid",
	})

	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Redirect != InvoicesPath {
		t.Errorf("redirect = %q, want %q", res.Redirect, InvoicesPath)
	}
	if len(repo.Invoices) != 1 {
		t.Fatalf("expected 1 stored invoice, got %d", len(repo.Invoices))
	}
	for _, inv := range repo.Invoices {
		if inv.CustomerID != "c1" {
			t.Errorf("customerId = %q", inv.CustomerID)
		}
		if inv.Amount != 5000 {
			t.Errorf("amount = %d, want 5000 cents", inv.Amount)
		}
		if inv.Status != "paid" {
			t.Errorf("status = %q", inv.Status)
		}
		if got := time.Time(inv.Date).Format("2006-01-02"); got != time.Now().Format("2006-01-02") {
			t.Errorf("date = %q, want today", got)
		}
	}
	if len(inval.Prefixes) != 1 || inval.Prefixes[0] != InvoiceCachePrefix {
		t.Errorf("invalidations = %v", inval.Prefixes)
	}
}

func TestCreateInvoiceAmountToCents(t *testing.T) {
	repo := testutil.NewMemInvoiceRepo()
	svc := newInvoiceService(repo, &testutil.RecInvalidator{})

	res := svc.Create(context.Background(), InvoiceForm{
		CustomerID: "c1", Amount: "12.34", Status: "pending",
	})
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	for _, inv := range repo.Invoices {
		if inv.Amount != 1234 {
			t.Errorf("amount = %d, want 1234", inv.Amount)
		}
		// 读回除以 100 要还原表单金额
		if back := float64(inv.Amount) / 100; back != 12.34 {
			t.Errorf("round-trip = %v", back)
		}
	}
}

func TestCreateInvoiceValidation(t *testing.T) {
	tests := []struct {
		name      string
		form      InvoiceForm
		wantField string
	}{
		{"zero amount", InvoiceForm{CustomerID: "c1", Amount: "0", Status: "paid"}, "amount"},
		{"negative amount", InvoiceForm{CustomerID: "c1", Amount: "-5", Status: "paid"}, "amount"},
		{"non-numeric amount", InvoiceForm{CustomerID: "c1", Amount: "abc", Status: "paid"}, "amount"},
		{"unknown status", InvoiceForm{CustomerID: "c1", Amount: "10", Status: "draft"}, "status"},
		{"empty status", InvoiceForm{CustomerID: "c1", Amount: "10", Status: ""}, "status"},
		{"missing customer", InvoiceForm{CustomerID: "", Amount: "10", Status: "paid"}, "customerId"},
		// ParseFloat 接受 NaN/Inf，但它们不是合法金额；超大金额换算成分会溢出 int64
		{"NaN amount", InvoiceForm{CustomerID: "c1", Amount: "NaN", Status: "paid"}, "amount"},
		{"infinite amount", InvoiceForm{CustomerID: "c1", Amount: "+Inf", Status: "paid"}, "amount"},
		{"overflowing amount", InvoiceForm{CustomerID: "c1", Amount: "1e300", Status: "paid"}, "amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMemInvoiceRepo()
			inval := &testutil.RecInvalidator{}
			svc := newInvoiceService(repo, inval)

			res := svc.Create(context.Background(), tt.form)

			if res.Success {
				t.Fatal("expected validation failure")
			}
			if len(res.Errors[tt.wantField]) == 0 {
				t.Errorf("expected violation on %q, got %v", tt.wantField, res.Errors)
			}
			if len(repo.Invoices) != 0 {
				t.Error("no row may be persisted on validation failure")
			}
			if len(inval.Prefixes) != 0 {
				t.Error("cache must not be invalidated on failure")
			}
			if res.Redirect != "" {
				t.Error("no redirect on failure")
			}
		})
	}
}

func TestCreateInvoiceAmountMessage(t *testing.T) {
	svc := newInvoiceService(testutil.NewMemInvoiceRepo(), &testutil.RecInvalidator{})

	res := svc.Create(context.Background(), InvoiceForm{CustomerID: "c1", Amount: "0", Status: "paid"})
	if got := res.Errors["amount"]; len(got) != 1 || got[0] != "amount must be greater than 0" {
		t.Errorf("amount errors = %v", got)
	}
}

func TestCreateInvoicePersistenceFault(t *testing.T) {
	repo := testutil.NewMemInvoiceRepo()
	repo.Err = errors.New("connection reset")
	inval := &testutil.RecInvalidator{}
	svc := newInvoiceService(repo, inval)

	res := svc.Create(context.Background(), InvoiceForm{CustomerID: "c1", Amount: "10", Status: "paid"})

	// 写库失败走恢复路径：返回失败结果，不失效缓存，不触发跳转
	if res.Success {
		t.Fatal("expected failure result")
	}
	if res.Message != "Failed to create invoice." {
		t.Errorf("message = %q", res.Message)
	}
	if len(res.Errors) != 0 {
		t.Errorf("no field errors expected, got %v", res.Errors)
	}
	if len(inval.Prefixes) != 0 {
		t.Error("cache must not be invalidated on persistence failure")
	}
}

func TestUpdateInvoice(t *testing.T) {
	repo := testutil.NewMemInvoiceRepo()
	inval := &testutil.RecInvalidator{}
	svc := newInvoiceService(repo, inval)

	if res := svc.Create(context.Background(), InvoiceForm{CustomerID: "c1", Amount: "10", Status: "pending"}); !res.Success {
		t.Fatalf("seed: %+v", res)
	}
	var id string
	for k := range repo.Invoices {
		id = k
	}

	res := svc.Update(context.Background(), id, InvoiceForm{CustomerID: "c2", Amount: "99.5", Status: "paid"})
	if !res.Success {
		t.Fatalf("update: %+v", res)
	}
	inv := repo.Invoices[id]
	if inv.CustomerID != "c2" || inv.Amount != 9950 || inv.Status != "paid" {
		t.Errorf("stored = %+v", inv)
	}
	if res.Redirect != InvoicesPath {
		t.Errorf("redirect = %q", res.Redirect)
	}
}

func TestUpdateInvoiceNotFound(t *testing.T) {
	inval := &testutil.RecInvalidator{}
	svc := newInvoiceService(testutil.NewMemInvoiceRepo(), inval)

	res := svc.Update(context.Background(), "missing", InvoiceForm{CustomerID: "c1", Amount: "10", Status: "paid"})
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Message != "Invoice not found." {
		t.Errorf("message = %q", res.Message)
	}
	if len(inval.Prefixes) != 0 {
		t.Error("cache must not be invalidated")
	}
}

func TestDeleteInvoice(t *testing.T) {
	repo := testutil.NewMemInvoiceRepo()
	inval := &testutil.RecInvalidator{}
	svc := newInvoiceService(repo, inval)

	svc.Create(context.Background(), InvoiceForm{CustomerID: "c1", Amount: "10", Status: "pending"})
	var id string
	for k := range repo.Invoices {
		id = k
	}
	inval.Prefixes = nil

	res := svc.Delete(context.Background(), id)
	if !res.Success {
		t.Fatalf("delete: %+v", res)
	}
	if res.Redirect != "" {
		t.Errorf("delete should not redirect, got %q", res.Redirect)
	}
	if len(repo.Invoices) != 0 {
		t.Error("row not removed")
	}
	if len(inval.Prefixes) != 1 {
		t.Errorf("invalidations = %v", inval.Prefixes)
	}

	// 再删一次：0 行受影响 → not found
	res = svc.Delete(context.Background(), id)
	if res.Success || res.Message != "Invoice not found." {
		t.Errorf("second delete: %+v", res)
	}
}
