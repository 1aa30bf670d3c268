package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	jobdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/job/domain"
)

type Repository struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) jobdomain.Repository {
	return &Repository{db: db}
}

func (r *Repository) Find(ctx context.Context, companyID, id snowflake.ID) (*jobdomain.Job, error) {
	var job jobdomain.Job
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *Repository) ListByCompany(ctx context.Context, companyID snowflake.ID) ([]jobdomain.Job, error) {
	var jobs []jobdomain.Job
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("scheduled_at DESC, id DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *Repository) Insert(ctx context.Context, job *jobdomain.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *Repository) Save(ctx context.Context, job *jobdomain.Job) error {
	job.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *Repository) DeleteByID(ctx context.Context, companyID, id snowflake.ID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&jobdomain.Job{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) SetPaymentLink(ctx context.Context, companyID, id snowflake.ID, link jobdomain.PaymentLink) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&jobdomain.Job{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(map[string]any{
			"payment_link_url":   link.URL,
			"base_amount_cents":  link.BaseAmountCents,
			"fee_amount_cents":   link.FeeAmountCents,
			"total_amount_cents": link.TotalAmountCents,
			"routing_method":     link.RoutingMethod,
			"updated_at":         now,
		}).Error
}

func (r *Repository) MarkPaid(ctx context.Context, companyID, id snowflake.ID, paidAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&jobdomain.Job{}).
		Where("company_id = ? AND id = ? AND status <> ?", companyID, id, jobdomain.StatusPaid).
		Updates(map[string]any{
			"status":     jobdomain.StatusPaid,
			"paid_at":    paidAt,
			"updated_at": paidAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) AttachReceipt(ctx context.Context, companyID, id, receiptID snowflake.ID) error {
	return r.db.WithContext(ctx).
		Model(&jobdomain.Job{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(map[string]any{
			"receipt_id": receiptID,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *Repository) ListRecurringDue(ctx context.Context, from, to time.Time) ([]jobdomain.Job, error) {
	var jobs []jobdomain.Job
	err := r.db.WithContext(ctx).
		Where("is_recurring = ? AND scheduled_at >= ? AND scheduled_at < ?", true, from, to).
		Order("scheduled_at ASC, id ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *Repository) OccurrenceExists(ctx context.Context, companyID, clientID snowflake.ID, title string, at time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&jobdomain.Job{}).
		Where("company_id = ? AND client_id = ? AND title = ? AND scheduled_at = ?", companyID, clientID, title, at).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
