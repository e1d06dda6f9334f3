package service

import (
	"context"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"go-invoice-admin/internal/domain"
	"go-invoice-admin/internal/validate"
	"go-invoice-admin/pkg/utils"
)

// maxInvoiceAmount 表单金额上限；换算成分之后仍远在 int64 范围内
const maxInvoiceAmount = 1e14

var invoiceSchema = validate.Schema{
	{Name: "customerId", Rules: []validate.Rule{
		validate.Required("Please select a customer."),
	}},
	{Name: "amount", Rules: []validate.Rule{
		validate.GreaterThan(0, "amount must be greater than 0"),
		validate.AtMost(maxInvoiceAmount, "amount is too large"),
	}},
	{Name: "status", Rules: []validate.Rule{
		validate.OneOf("Please select an invoice status.",
			domain.InvoiceStatusPending, domain.InvoiceStatusPaid),
	}},
}

// InvoiceForm 表单原始值（全是字符串，未经类型化）
type InvoiceForm struct {
	CustomerID string
	Amount     string
	Status     string
}

func (f InvoiceForm) get(name string) string {
	switch name {
	case "customerId":
		return f.CustomerID
	case "amount":
		return f.Amount
	case "status":
		return f.Status
	}
	return ""
}

type InvoiceService struct {
	repo  domain.InvoiceRepository
	inval Invalidator
	log   *zap.Logger
}

func NewInvoiceService(repo domain.InvoiceRepository, inval Invalidator, log *zap.Logger) *InvoiceService {
	return &InvoiceService{repo: repo, inval: inval, log: log}
}

// Create 校验 → 金额转分 → 插入（date 取服务端当天）→ 列表缓存失效 → 跳转信号
func (s *InvoiceService) Create(ctx context.Context, f InvoiceForm) Result {
	if errs := invoiceSchema.Validate(f.get); !errs.Empty() {
		return invalid(errs)
	}
	amount, _ := strconv.ParseFloat(f.Amount, 64)

	inv := &domain.Invoice{
		ID:         utils.NewID(),
		CustomerID: f.CustomerID,
		Amount:     toCents(amount),
		Status:     f.Status,
		Date:       datatypes.Date(time.Now()),
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		s.log.Error("create invoice", zap.Error(err))
		return fail("Failed to create invoice.")
	}
	s.invalidate(ctx)
	return ok("Success", InvoicesPath)
}

func (s *InvoiceService) Update(ctx context.Context, id string, f InvoiceForm) Result {
	if id == "" {
		return fail("Missing invoice id.")
	}
	if errs := invoiceSchema.Validate(f.get); !errs.Empty() {
		return invalid(errs)
	}
	amount, _ := strconv.ParseFloat(f.Amount, 64)

	rows, err := s.repo.Update(ctx, &domain.Invoice{
		ID:         id,
		CustomerID: f.CustomerID,
		Amount:     toCents(amount),
		Status:     f.Status,
	})
	if err != nil {
		s.log.Error("update invoice", zap.Error(err), zap.String("id", id))
		return fail("Failed to update invoice.")
	}
	if rows == 0 {
		return fail("Invoice not found.")
	}
	s.invalidate(ctx)
	return ok("Success", InvoicesPath)
}

// Delete 硬删。成功只做列表失效，不带跳转（调用方本来就在列表页）
func (s *InvoiceService) Delete(ctx context.Context, id string) Result {
	if id == "" {
		return fail("Missing invoice id.")
	}
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("delete invoice", zap.Error(err), zap.String("id", id))
		return fail("Failed to delete invoice.")
	}
	if rows == 0 {
		return fail("Invoice not found.")
	}
	s.invalidate(ctx)
	return ok("Success", "")
}

func (s *InvoiceService) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *InvoiceService) List(ctx context.Context, q domain.ListQuery) ([]domain.InvoiceRow, int64, error) {
	return s.repo.List(ctx, q)
}

func (s *InvoiceService) invalidate(ctx context.Context) {
	if err := s.inval.InvalidatePrefix(ctx, InvoiceCachePrefix); err != nil {
		s.log.Warn("invalidate invoice cache", zap.Error(err))
	}
}

// toCents 表单金额（元）转最小单位（分）
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
