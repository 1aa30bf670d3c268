package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type testCleanupRequest struct {
	Prefix string `json:"prefix"`
}

// TestCleanup removes seed data created by integration runs. The route is
// only registered outside production.
func (s *Server) TestCleanup(c *gin.Context) {
	if s.cfg.IsProduction() {
		AbortWithError(c, ErrNotFound)
		return
	}

	var req testCleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	prefix := strings.TrimSpace(req.Prefix)
	if prefix == "" {
		AbortWithError(c, newValidationError("prefix", "required", "prefix is required"))
		return
	}

	ctx := c.Request.Context()
	companyIDs, err := s.loadCompanyIDsByPrefix(ctx, prefix)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.deleteCompanyData(ctx, companyIDs); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) loadCompanyIDsByPrefix(ctx context.Context, prefix string) ([]int64, error) {
	like := strings.TrimSpace(prefix) + "%"
	var companyIDs []int64
	if err := s.db.WithContext(ctx).
		Table("profiles").
		Select("company_id").
		Where("email LIKE ? AND company_id IS NOT NULL", like).
		Scan(&companyIDs).Error; err != nil {
		return nil, err
	}
	return companyIDs, nil
}

func (s *Server) deleteCompanyData(ctx context.Context, companyIDs []int64) error {
	if len(companyIDs) == 0 {
		return nil
	}
	queries := []string{
		`DELETE FROM audit_logs WHERE company_id IN ?`,
		`DELETE FROM payment_events WHERE company_id IN ?`,
		`DELETE FROM payments WHERE company_id IN ?`,
		`DELETE FROM receipts WHERE company_id IN ?`,
		`DELETE FROM jobs WHERE company_id IN ?`,
		`DELETE FROM clients WHERE company_id IN ?`,
		`DELETE FROM profiles WHERE company_id IN ?`,
	}
	for _, query := range queries {
		if err := s.db.WithContext(ctx).Exec(query, companyIDs).Error; err != nil {
			return err
		}
	}
	return nil
}
