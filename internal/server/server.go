package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	auditdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/audit/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/cache"
	checkoutdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/checkout/domain"
	clientdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/client/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/config"
	connectdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/connect/domain"
	jobdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/job/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/observability/logger"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/observability/metrics"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/observability/tracing"
	paymentdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/payment/domain"
	profiledomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/profile/domain"
	receiptdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/receipt/domain"
)

type Params struct {
	fx.In

	Cfg         config.Config
	Log         *zap.Logger
	DB          *gorm.DB
	Engine      *gin.Engine
	Metrics     *metrics.HTTPMetrics
	ProfileSvc  profiledomain.Service
	ClientSvc   clientdomain.Service
	JobSvc      jobdomain.Service
	CheckoutSvc checkoutdomain.Service
	PaymentSvc  paymentdomain.Service
	ConnectSvc  connectdomain.Service
	ReceiptSvc  receiptdomain.Service
	AuditSvc    auditdomain.Service
}

type Server struct {
	cfg         config.Config
	log         *zap.Logger
	db          *gorm.DB
	engine      *gin.Engine
	metrics     *metrics.HTTPMetrics
	profileSvc  profiledomain.Service
	clientSvc   clientdomain.Service
	jobSvc      jobdomain.Service
	checkoutSvc checkoutdomain.Service
	paymentSvc  paymentdomain.Service
	connectSvc  connectdomain.Service
	receiptSvc  receiptdomain.Service
	auditSvc    auditdomain.Service
	authCache   *cache.TTLCache[string, *profiledomain.Profile]
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:         p.Cfg,
		log:         p.Log.Named("server"),
		db:          p.DB,
		engine:      p.Engine,
		metrics:     p.Metrics,
		profileSvc:  p.ProfileSvc,
		clientSvc:   p.ClientSvc,
		jobSvc:      p.JobSvc,
		checkoutSvc: p.CheckoutSvc,
		paymentSvc:  p.PaymentSvc,
		connectSvc:  p.ConnectSvc,
		receiptSvc:  p.ReceiptSvc,
		auditSvc:    p.AuditSvc,
		authCache:   cache.NewTTLCache[string, *profiledomain.Profile](),
	}
}

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine(cfg config.Config, m *metrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	engine.Use(tracing.GinMiddleware())
	engine.Use(metrics.GinMiddleware(m))
	return engine
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
