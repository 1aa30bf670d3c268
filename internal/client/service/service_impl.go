package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	clientdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/client/domain"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p Params) clientdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("client.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, companyID snowflake.ID, req clientdomain.CreateClientRequest) (*clientdomain.Client, error) {
	if companyID == 0 {
		return nil, clientdomain.ErrInvalidID
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, clientdomain.ErrInvalidName
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, clientdomain.ErrInvalidEmail
	}

	client := &clientdomain.Client{
		ID:        s.genID.Generate(),
		CompanyID: companyID,
		Name:      name,
		Email:     email,
		Phone:     trimOptional(req.Phone),
		Address:   trimOptional(req.Address),
	}
	if err := s.db.WithContext(ctx).Create(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

func (s *Service) List(ctx context.Context, companyID snowflake.ID) ([]clientdomain.Client, error) {
	if companyID == 0 {
		return nil, clientdomain.ErrInvalidID
	}
	var clients []clientdomain.Client
	err := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *Service) GetByID(ctx context.Context, companyID, id snowflake.ID) (*clientdomain.Client, error) {
	if companyID == 0 || id == 0 {
		return nil, clientdomain.ErrInvalidID
	}
	var client clientdomain.Client
	err := s.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, clientdomain.ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *Service) Update(ctx context.Context, companyID, id snowflake.ID, req clientdomain.UpdateClientRequest) (*clientdomain.Client, error) {
	client, err := s.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		client.Name = name
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		if !strings.Contains(email, "@") {
			return nil, clientdomain.ErrInvalidEmail
		}
		client.Email = email
	}
	if req.Phone != nil {
		client.Phone = trimOptional(req.Phone)
	}
	if req.Address != nil {
		client.Address = trimOptional(req.Address)
	}
	client.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

func (s *Service) Delete(ctx context.Context, companyID, id snowflake.ID) error {
	if companyID == 0 || id == 0 {
		return clientdomain.ErrInvalidID
	}
	result := s.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&clientdomain.Client{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return clientdomain.ErrClientNotFound
	}
	return nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
