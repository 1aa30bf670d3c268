package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	jobdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/job/domain"
)

type createJobRequest struct {
	ClientID    string     `json:"client_id"`
	Title       string     `json:"title"`
	Price       float64    `json:"price"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	IsRecurring bool       `json:"is_recurring"`
	Frequency   *string    `json:"frequency"`
	NotifyPhone *string    `json:"notify_phone"`
}

type updateJobRequest struct {
	Title       *string    `json:"title"`
	Price       *float64   `json:"price"`
	Status      *string    `json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	NotifyPhone *string    `json:"notify_phone"`
}

func (s *Server) CreateJob(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	clientID, err := parseSnowflake(req.ClientID)
	if err != nil {
		AbortWithError(c, newValidationError("client_id", "invalid_client_id", "invalid client_id"))
		return
	}

	domainReq := jobdomain.CreateJobRequest{
		ClientID:    clientID,
		Title:       req.Title,
		Price:       req.Price,
		IsRecurring: req.IsRecurring,
		NotifyPhone: req.NotifyPhone,
	}
	if req.ScheduledAt != nil {
		domainReq.ScheduledAt = *req.ScheduledAt
	}
	if req.Frequency != nil {
		frequency := jobdomain.Frequency(*req.Frequency)
		domainReq.Frequency = &frequency
	}

	job, err := s.jobSvc.Create(c.Request.Context(), companyIDFromGin(c), domainReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": job})
}

func (s *Server) ListJobs(c *gin.Context) {
	jobs, err := s.jobSvc.List(c.Request.Context(), companyIDFromGin(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": jobs})
}

func (s *Server) GetJob(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		AbortWithError(c, newValidationError("id", "invalid_job_id", "invalid job id"))
		return
	}

	job, err := s.jobSvc.GetByID(c.Request.Context(), companyIDFromGin(c), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": job})
}

func (s *Server) UpdateJob(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		AbortWithError(c, newValidationError("id", "invalid_job_id", "invalid job id"))
		return
	}

	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	domainReq := jobdomain.UpdateJobRequest{
		Title:       req.Title,
		Price:       req.Price,
		ScheduledAt: req.ScheduledAt,
		NotifyPhone: req.NotifyPhone,
	}
	if req.Status != nil {
		status := jobdomain.Status(*req.Status)
		domainReq.Status = &status
	}

	job, err := s.jobSvc.Update(c.Request.Context(), companyIDFromGin(c), id, domainReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": job})
}

func (s *Server) DeleteJob(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		AbortWithError(c, newValidationError("id", "invalid_job_id", "invalid job id"))
		return
	}

	if err := s.jobSvc.Delete(c.Request.Context(), companyIDFromGin(c), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
