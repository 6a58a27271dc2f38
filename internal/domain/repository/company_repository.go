package repository

import (
	"context"

	"github.com/jhoicas/stockalert-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	// GetByID devuelve (nil, nil) si la empresa no existe.
	GetByID(ctx context.Context, id string) (*entity.Company, error)
}
