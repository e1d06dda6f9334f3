package service

import (
	"context"
	"mime/multipart"
	"strings"

	"go.uber.org/zap"

	"go-invoice-admin/internal/domain"
	"go-invoice-admin/internal/validate"
	"go-invoice-admin/pkg/utils"
)

var customerSchema = validate.Schema{
	{Name: "firstName", Rules: []validate.Rule{
		validate.Required("First name is required."),
	}},
	{Name: "lastName", Rules: []validate.Rule{
		validate.Required("Last name is required."),
	}},
	{Name: "email", Rules: []validate.Rule{
		validate.Required("Email is required."),
		validate.Email("Please enter a valid email address."),
	}},
}

type CustomerForm struct {
	FirstName string
	LastName  string
	Email     string
	Image     *multipart.FileHeader // 可选头像
}

func (f CustomerForm) get(name string) string {
	switch name {
	case "firstName":
		return f.FirstName
	case "lastName":
		return f.LastName
	case "email":
		return f.Email
	}
	return ""
}

func (f CustomerForm) fullName() string {
	return strings.TrimSpace(f.FirstName) + " " + strings.TrimSpace(f.LastName)
}

// ImageStore 头像持久化；Check 返回违规消息（归到 imageUrl 字段），
// Save 在没有文件时返回空路径
type ImageStore interface {
	Check(fh *multipart.FileHeader) string
	Save(fh *multipart.FileHeader) (string, error)
}

type CustomerService struct {
	repo   domain.CustomerRepository
	images ImageStore
	inval  Invalidator
	log    *zap.Logger
}

func NewCustomerService(repo domain.CustomerRepository, images ImageStore, inval Invalidator, log *zap.Logger) *CustomerService {
	return &CustomerService{repo: repo, images: images, inval: inval, log: log}
}

// validateForm 文本规则 + 头像约束一次收齐，头像问题挂在 imageUrl 字段
func (s *CustomerService) validateForm(f CustomerForm) validate.Errors {
	errs := customerSchema.Validate(f.get)
	if msg := s.images.Check(f.Image); msg != "" {
		errs.Add("imageUrl", msg)
	}
	return errs
}

func (s *CustomerService) Create(ctx context.Context, f CustomerForm) Result {
	if errs := s.validateForm(f); !errs.Empty() {
		return invalid(errs)
	}

	// 注意：头像写盘与 INSERT 不在同一事务里，插入失败会留下孤儿文件
	path, err := s.images.Save(f.Image)
	if err != nil {
		s.log.Error("save customer image", zap.Error(err))
		return fail("Failed to upload image.")
	}

	cust := &domain.Customer{
		ID:       utils.NewID(),
		Name:     f.fullName(),
		Email:    strings.TrimSpace(f.Email),
		ImageURL: path,
	}
	if err := s.repo.Create(ctx, cust); err != nil {
		s.log.Error("create customer", zap.Error(err))
		return fail("Failed to create customer.")
	}
	s.invalidate(ctx)
	return ok("Success", CustomersPath)
}

func (s *CustomerService) Update(ctx context.Context, id string, f CustomerForm) Result {
	if id == "" {
		return fail("Missing customer id.")
	}
	if errs := s.validateForm(f); !errs.Empty() {
		return invalid(errs)
	}

	path, err := s.images.Save(f.Image)
	if err != nil {
		s.log.Error("save customer image", zap.Error(err), zap.String("id", id))
		return fail("Failed to upload image.")
	}

	rows, err := s.repo.Update(ctx, &domain.Customer{
		ID:       id,
		Name:     f.fullName(),
		Email:    strings.TrimSpace(f.Email),
		ImageURL: path,
	})
	if err != nil {
		s.log.Error("update customer", zap.Error(err), zap.String("id", id))
		return fail("Failed to update customer.")
	}
	if rows == 0 {
		return fail("Customer not found.")
	}
	s.invalidate(ctx)
	return ok("Success", CustomersPath)
}

// Delete 软删：只置 is_deleted，不动 is_disabled，也没有恢复操作
func (s *CustomerService) Delete(ctx context.Context, id string) Result {
	if id == "" {
		return fail("Missing customer id.")
	}
	rows, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		s.log.Error("soft delete customer", zap.Error(err), zap.String("id", id))
		return fail("Failed to delete customer.")
	}
	if rows == 0 {
		return fail("Customer not found.")
	}
	s.invalidate(ctx)
	return ok("Success", CustomersPath)
}

// Disable 停用：与软删互相独立
func (s *CustomerService) Disable(ctx context.Context, id string) Result {
	if id == "" {
		return fail("Missing customer id.")
	}
	rows, err := s.repo.Disable(ctx, id)
	if err != nil {
		s.log.Error("disable customer", zap.Error(err), zap.String("id", id))
		return fail("Failed to disable customer.")
	}
	if rows == 0 {
		return fail("Customer not found.")
	}
	s.invalidate(ctx)
	return ok("Success", CustomersPath)
}

func (s *CustomerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CustomerService) List(ctx context.Context, q domain.ListQuery) ([]domain.Customer, int64, error) {
	return s.repo.List(ctx, q)
}

func (s *CustomerService) invalidate(ctx context.Context) {
	if err := s.inval.InvalidatePrefix(ctx, CustomerCachePrefix); err != nil {
		s.log.Warn("invalidate customer cache", zap.Error(err))
	}
}
