package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	receiptdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/receipt/domain"
)

type Repository struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) receiptdomain.Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, receipt *receiptdomain.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *Repository) Find(ctx context.Context, companyID, id snowflake.ID) (*receiptdomain.Receipt, error) {
	var receipt receiptdomain.Receipt
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&receipt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *Repository) FindBySessionID(ctx context.Context, sessionID string) (*receiptdomain.Receipt, error) {
	var receipt receiptdomain.Receipt
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&receipt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}
