package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/audit"
	auditdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/audit/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/checkout"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/client"
	clientdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/client/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/clock"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/config"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/connect"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/job"
	jobdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/job/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/job/recurring"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/notify"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/observability/logger"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/observability/metrics"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/observability/tracing"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/payment"
	paymentdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/payment/domain"
	stripeprocessor "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/processor/stripe"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/profile"
	profiledomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/profile/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/receipt"
	receiptdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/receipt/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/server"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		tracing.Module,
		metrics.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		fx.Invoke(runMigrations),

		profile.Module,
		client.Module,
		job.Module,
		audit.Module,
		notify.Module,
		stripeprocessor.Module,
		checkout.Module,
		payment.Module,
		receipt.Module,
		connect.Module,
		recurring.Module,

		server.Module,
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func runMigrations(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&profiledomain.Profile{},
		&clientdomain.Client{},
		&jobdomain.Job{},
		&paymentdomain.EventRecord{},
		&paymentdomain.Payment{},
		&receiptdomain.Receipt{},
		&auditdomain.AuditLog{},
	)
}
