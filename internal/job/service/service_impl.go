package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	clientdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/client/domain"
	jobdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/job/domain"
)

type Params struct {
	fx.In

	Repo    jobdomain.Repository
	Clients clientdomain.Service
	Log     *zap.Logger
	GenID   *snowflake.Node
}

type Service struct {
	repo    jobdomain.Repository
	clients clientdomain.Service
	log     *zap.Logger
	genID   *snowflake.Node
}

func NewService(p Params) jobdomain.Service {
	return &Service{
		repo:    p.Repo,
		clients: p.Clients,
		log:     p.Log.Named("job.service"),
		genID:   p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, companyID snowflake.ID, req jobdomain.CreateJobRequest) (*jobdomain.Job, error) {
	if companyID == 0 {
		return nil, jobdomain.ErrInvalidJobID
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, jobdomain.ErrInvalidTitle
	}
	if req.Price <= 0 {
		return nil, jobdomain.ErrInvalidPrice
	}
	if req.ClientID == 0 {
		return nil, jobdomain.ErrInvalidClient
	}
	if req.IsRecurring {
		if req.Frequency == nil || !req.Frequency.Valid() {
			return nil, jobdomain.ErrInvalidFrequency
		}
	} else if req.Frequency != nil {
		return nil, jobdomain.ErrInvalidFrequency
	}

	// The client must belong to the same tenant.
	if _, err := s.clients.GetByID(ctx, companyID, req.ClientID); err != nil {
		return nil, jobdomain.ErrInvalidClient
	}

	scheduledAt := req.ScheduledAt
	if scheduledAt.IsZero() {
		scheduledAt = time.Now().UTC()
	}

	job := &jobdomain.Job{
		ID:          s.genID.Generate(),
		CompanyID:   companyID,
		ClientID:    req.ClientID,
		Title:       title,
		Price:       req.Price,
		Status:      jobdomain.StatusPending,
		ScheduledAt: scheduledAt.UTC(),
		IsRecurring: req.IsRecurring,
		Frequency:   req.Frequency,
		NotifyPhone: req.NotifyPhone,
	}
	if err := s.repo.Insert(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *Service) List(ctx context.Context, companyID snowflake.ID) ([]jobdomain.Job, error) {
	if companyID == 0 {
		return nil, jobdomain.ErrInvalidJobID
	}
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *Service) GetByID(ctx context.Context, companyID, id snowflake.ID) (*jobdomain.Job, error) {
	if companyID == 0 || id == 0 {
		return nil, jobdomain.ErrInvalidJobID
	}
	job, err := s.repo.Find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, jobdomain.ErrJobNotFound
	}
	return job, nil
}

func (s *Service) Update(ctx context.Context, companyID, id snowflake.ID, req jobdomain.UpdateJobRequest) (*jobdomain.Job, error) {
	job, err := s.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, jobdomain.ErrInvalidTitle
		}
		job.Title = title
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, jobdomain.ErrInvalidPrice
		}
		job.Price = *req.Price
	}
	if req.Status != nil {
		switch *req.Status {
		case jobdomain.StatusPending, jobdomain.StatusPaid, jobdomain.StatusCompleted, jobdomain.StatusTest:
			job.Status = *req.Status
		default:
			return nil, jobdomain.ErrInvalidStatus
		}
	}
	if req.ScheduledAt != nil {
		job.ScheduledAt = req.ScheduledAt.UTC()
	}
	if req.NotifyPhone != nil {
		job.NotifyPhone = req.NotifyPhone
	}

	if err := s.repo.Save(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *Service) Delete(ctx context.Context, companyID, id snowflake.ID) error {
	if companyID == 0 || id == 0 {
		return jobdomain.ErrInvalidJobID
	}
	deleted, err := s.repo.DeleteByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return jobdomain.ErrJobNotFound
	}
	return nil
}
