package server

import (
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	obscontext "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/observability/context"
)

var errInvalidID = errors.New("invalid_id")

// RegisterRoutes wires every endpoint. The webhook stays outside the auth
// group; the processor signs its own requests.
func (s *Server) RegisterRoutes() {
	s.engine.GET("/healthz", s.Health)
	s.engine.GET("/metrics", s.metrics.Handler())

	s.engine.POST("/webhooks/stripe", s.StripeWebhook)

	api := s.engine.Group("/api", s.RequireAuth())
	{
		api.GET("/profile", s.GetProfile)

		api.POST("/clients", s.CreateClient)
		api.GET("/clients", s.ListClients)
		api.GET("/clients/:id", s.GetClient)
		api.PATCH("/clients/:id", s.UpdateClient)
		api.DELETE("/clients/:id", s.DeleteClient)

		api.POST("/jobs", s.CreateJob)
		api.GET("/jobs", s.ListJobs)
		api.GET("/jobs/:id", s.GetJob)
		api.PATCH("/jobs/:id", s.UpdateJob)
		api.DELETE("/jobs/:id", s.DeleteJob)

		api.POST("/payments/checkout", s.CreateCheckout)

		api.POST("/connect", s.InitiateConnect)
		api.GET("/connect/status", s.ConnectStatus)

		api.GET("/receipts/:id", s.GetReceipt)

		api.GET("/audit-logs", s.ListAuditLogs)
	}

	if !s.cfg.IsProduction() {
		s.engine.POST("/test/cleanup", s.TestCleanup)
	}
}

func companyIDFromGin(c *gin.Context) snowflake.ID {
	return snowflake.ID(obscontext.CompanyIDFromGin(c))
}

func parseIDParam(c *gin.Context, name string) (snowflake.ID, bool) {
	id, err := snowflake.ParseString(c.Param(name))
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func parseSnowflake(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errInvalidID
	}
	return id, nil
}
