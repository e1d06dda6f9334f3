package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-invoice-admin/internal/core/cache"
	"go-invoice-admin/internal/core/server"
	"go-invoice-admin/internal/service"
	"go-invoice-admin/internal/transport/http/handler"
	mdw "go-invoice-admin/internal/transport/http/middleware"
)

type Deps struct {
	Invoices  *service.InvoiceService
	Customers *service.CustomerService
	Cache     *cache.Cache
	ListTTL   time.Duration
	UploadDir string // 静态回源目录
	Prefix    string // 如 /customers
}

func NewEngine(l *zap.Logger, d Deps) *gin.Engine {
	r := server.NewBase(l)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	// 健康检查 + 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 上传的客户头像直接静态回源
	r.Static(d.Prefix, d.UploadDir)

	dash := r.Group("/dashboard")
	handler.MountInvoices(dash.Group("/invoices"), d.Invoices, d.Cache, d.ListTTL)
	handler.MountCustomers(dash.Group("/customers"), d.Customers, d.Cache, d.ListTTL)

	return r
}
