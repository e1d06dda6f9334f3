package handler

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-invoice-admin/internal/core/cache"
	"go-invoice-admin/internal/domain"
	"go-invoice-admin/internal/service"
	httpez "go-invoice-admin/internal/transport/http/ez"
)

type customerListQ struct {
	Query       string `form:"query"`
	Page        int    `form:"page,default=1"`
	Size        int    `form:"size,default=20"`
	WithDeleted bool   `form:"with_deleted"` // 默认不含软删
}

type customerIn struct {
	FirstName string                `form:"firstName"`
	LastName  string                `form:"lastName"`
	Email     string                `form:"email"`
	Image     *multipart.FileHeader `form:"profileImage"`
}

func (in customerIn) toForm() service.CustomerForm {
	return service.CustomerForm{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Image:     in.Image,
	}
}

type customerListOut struct {
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
	Items []domain.Customer `json:"items"`
}

// MountCustomers 挂载 /dashboard/customers 下的读写接口
func MountCustomers(g *gin.RouterGroup, svc *service.CustomerService, loader cache.Loader, ttl time.Duration) {
	ez := httpez.New(g)

	// --- 列表 ---
	httpez.Register[customerListQ, customerListOut](ez, httpez.Action[customerListQ, customerListOut]{
		Method: http.MethodGet,
		Path:   "",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *customerListQ) (customerListOut, error) {
			if in.Page <= 0 {
				in.Page = 1
			}
			if in.Size <= 0 || in.Size > 100 {
				in.Size = 20
			}
			key := fmt.Sprintf("%sq=%s:p=%d:s=%d:d=%t", service.CustomerCachePrefix, in.Query, in.Page, in.Size, in.WithDeleted)
			out, err := cache.GetOrLoadJSON[customerListOut](loader, c.Request.Context(), key, ttl,
				func(ctx context.Context) (*customerListOut, error) {
					cs, total, err := svc.List(ctx, domain.ListQuery{
						Query:       in.Query,
						Offset:      (in.Page - 1) * in.Size,
						Limit:       in.Size,
						WithDeleted: in.WithDeleted,
					})
					if err != nil {
						return nil, err
					}
					if cs == nil {
						cs = []domain.Customer{}
					}
					return &customerListOut{Total: total, Page: in.Page, Size: in.Size, Items: cs}, nil
				})
			if err != nil {
				return customerListOut{}, httpez.Internal("list customers failed", err)
			}
			return *out, nil
		},
	})

	// --- 详情 ---
	httpez.Register[struct{}, domain.Customer](ez, httpez.Action[struct{}, domain.Customer]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (domain.Customer, error) {
			cust, err := svc.Get(c.Request.Context(), c.Param("id"))
			if err != nil {
				return domain.Customer{}, httpez.Internal("get customer failed", err)
			}
			if cust == nil {
				return domain.Customer{}, httpez.NotFound("customer not found")
			}
			return *cust, nil
		},
	})

	// --- 变更接口：multipart 表单（可带 profileImage），直接回 Result ---
	g.POST("", func(c *gin.Context) {
		in, ok := bindCustomerForm(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, svc.Create(c.Request.Context(), in.toForm()))
	})

	g.PUT("/:id", func(c *gin.Context) {
		in, ok := bindCustomerForm(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, svc.Update(c.Request.Context(), c.Param("id"), in.toForm()))
	})

	g.DELETE("/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Delete(c.Request.Context(), c.Param("id")))
	})

	g.POST("/:id/disable", func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Disable(c.Request.Context(), c.Param("id")))
	})
}

// bindCustomerForm urlencoded 和 multipart 都接；文件字段只在 multipart 下有值
func bindCustomerForm(c *gin.Context) (customerIn, bool) {
	var in customerIn
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusOK, service.Result{Message: "Invalid form submission."})
		return in, false
	}
	return in, true
}
