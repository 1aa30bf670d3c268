package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type CreateClientRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type UpdateClientRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type Service interface {
	Create(ctx context.Context, companyID snowflake.ID, req CreateClientRequest) (*Client, error)
	List(ctx context.Context, companyID snowflake.ID) ([]Client, error)
	GetByID(ctx context.Context, companyID, id snowflake.ID) (*Client, error)
	Update(ctx context.Context, companyID, id snowflake.ID, req UpdateClientRequest) (*Client, error)
	Delete(ctx context.Context, companyID, id snowflake.ID) error
}

var (
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidEmail   = errors.New("invalid_email")
	ErrInvalidID      = errors.New("invalid_id")
	ErrClientNotFound = errors.New("client_not_found")
)
