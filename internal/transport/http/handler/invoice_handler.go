package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-invoice-admin/internal/core/cache"
	"go-invoice-admin/internal/domain"
	"go-invoice-admin/internal/service"
	httpez "go-invoice-admin/internal/transport/http/ez"
)

const dateLayout = "2006-01-02"

type listQ struct {
	Query string `form:"query"`
	Page  int    `form:"page,default=1"`
	Size  int    `form:"size,default=20"`
}

func (in *listQ) normalize() {
	if in.Page <= 0 {
		in.Page = 1
	}
	if in.Size <= 0 || in.Size > 100 {
		in.Size = 20
	}
}

// 发票表单入参：保持原始字符串，交给 service 做 schema 校验
type invoiceIn struct {
	CustomerID string `form:"customerId"`
	Amount     string `form:"amount"`
	Status     string `form:"status"`
}

func (in invoiceIn) toForm() service.InvoiceForm {
	return service.InvoiceForm{CustomerID: in.CustomerID, Amount: in.Amount, Status: in.Status}
}

type invoiceRowOut struct {
	ID            string `json:"id"`
	CustomerID    string `json:"customerId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	ImageURL      string `json:"imageUrl"`
	Amount        int64  `json:"amount"` // 分
	Status        string `json:"status"`
	Date          string `json:"date"`
}

type invoiceListOut struct {
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
	Items []invoiceRowOut `json:"items"`
}

type invoiceOut struct {
	ID         string `json:"id"`
	CustomerID string `json:"customerId"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
	Date       string `json:"date"`
}

// MountInvoices 挂载 /dashboard/invoices 下的读写接口
func MountInvoices(g *gin.RouterGroup, svc *service.InvoiceService, loader cache.Loader, ttl time.Duration) {
	ez := httpez.New(g)

	// --- 列表（搜索 + 分页，经 redis 缓存）---
	httpez.Register[listQ, invoiceListOut](ez, httpez.Action[listQ, invoiceListOut]{
		Method: http.MethodGet,
		Path:   "",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (invoiceListOut, error) {
			in.normalize()
			key := fmt.Sprintf("%sq=%s:p=%d:s=%d", service.InvoiceCachePrefix, in.Query, in.Page, in.Size)
			out, err := cache.GetOrLoadJSON[invoiceListOut](loader, c.Request.Context(), key, ttl,
				func(ctx context.Context) (*invoiceListOut, error) {
					rows, total, err := svc.List(ctx, domain.ListQuery{
						Query:  in.Query,
						Offset: (in.Page - 1) * in.Size,
						Limit:  in.Size,
					})
					if err != nil {
						return nil, err
					}
					o := invoiceListOut{Total: total, Page: in.Page, Size: in.Size, Items: make([]invoiceRowOut, 0, len(rows))}
					for _, r := range rows {
						o.Items = append(o.Items, invoiceRowOut{
							ID:            r.ID,
							CustomerID:    r.CustomerID,
							CustomerName:  r.CustomerName,
							CustomerEmail: r.CustomerEmail,
							ImageURL:      r.ImageURL,
							Amount:        r.Amount,
							Status:        r.Status,
							Date:          r.Date.Format(dateLayout),
						})
					}
					return &o, nil
				})
			if err != nil {
				return invoiceListOut{}, httpez.Internal("list invoices failed", err)
			}
			return *out, nil
		},
	})

	// --- 详情（编辑表单回显）---
	httpez.Register[struct{}, invoiceOut](ez, httpez.Action[struct{}, invoiceOut]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (invoiceOut, error) {
			inv, err := svc.Get(c.Request.Context(), c.Param("id"))
			if err != nil {
				return invoiceOut{}, httpez.Internal("get invoice failed", err)
			}
			if inv == nil {
				return invoiceOut{}, httpez.NotFound("invoice not found")
			}
			return invoiceOut{
				ID:         inv.ID,
				CustomerID: inv.CustomerID,
				Amount:     inv.Amount,
				Status:     inv.Status,
				Date:       time.Time(inv.Date).Format(dateLayout),
			}, nil
		},
	})

	// --- 变更接口直接回 Result（表单层要逐字段错误与跳转信号）---
	g.POST("", func(c *gin.Context) {
		var in invoiceIn
		if err := c.ShouldBind(&in); err != nil {
			c.JSON(http.StatusOK, service.Result{Message: "Invalid form submission."})
			return
		}
		c.JSON(http.StatusOK, svc.Create(c.Request.Context(), in.toForm()))
	})

	g.PUT("/:id", func(c *gin.Context) {
		var in invoiceIn
		if err := c.ShouldBind(&in); err != nil {
			c.JSON(http.StatusOK, service.Result{Message: "Invalid form submission."})
			return
		}
		c.JSON(http.StatusOK, svc.Update(c.Request.Context(), c.Param("id"), in.toForm()))
	})

	g.DELETE("/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Delete(c.Request.Context(), c.Param("id")))
	})
}
