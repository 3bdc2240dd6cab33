package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sales-system/internal/dto"
	"sales-system/internal/entities"
	"sales-system/internal/repositories"
	"sales-system/pkg/types"
)

type CustomerServiceInterface interface {
	GetCustomers(ctx context.Context, filter types.Filter) ([]dto.CustomerDTO, uint64, error)
	FindCustomer(ctx context.Context, id uuid.UUID) (*dto.CustomerDTO, error)
	CreateCustomer(ctx context.Context, payload dto.CreateCustomerDTO) (*dto.CustomerDTO, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, payload dto.UpdateCustomerDTO) (*dto.CustomerDTO, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

type CustomerService struct {
	repo   repositories.CustomerRepositoryInterface
	logger *zap.Logger
}

func NewCustomerService(repo repositories.CustomerRepositoryInterface, logger *zap.Logger) CustomerServiceInterface {
	return &CustomerService{repo: repo, logger: logger}
}

func toCustomerResponseDTO(c entities.Customer) dto.CustomerDTO {
	return dto.CustomerDTO{
		ID:          c.ID.String(),
		Name:        c.Name,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Document:    c.Document,
		Address:     c.Address,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt.Format(dto.TimeLayout),
		UpdatedAt:   c.UpdatedAt.Format(dto.TimeLayout),
	}
}

func (s *CustomerService) GetCustomers(ctx context.Context, filter types.Filter) ([]dto.CustomerDTO, uint64, error) {
	customers, total, err := s.repo.GetCustomers(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.CustomerDTO, 0, len(customers))
	for _, c := range customers {
		result = append(result, toCustomerResponseDTO(c))
	}
	return result, total, nil
}

func (s *CustomerService) FindCustomer(ctx context.Context, id uuid.UUID) (*dto.CustomerDTO, error) {
	customer, err := s.repo.FindCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	res := toCustomerResponseDTO(*customer)
	return &res, nil
}

func (s *CustomerService) CreateCustomer(ctx context.Context, payload dto.CreateCustomerDTO) (*dto.CustomerDTO, error) {
	customer := entities.Customer{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(payload.Name),
		Email:       strings.ToLower(strings.TrimSpace(payload.Email)),
		PhoneNumber: optionalString(payload.PhoneNumber),
		Document:    optionalString(payload.Document),
		Address:     optionalString(payload.Address),
		IsActive:    true,
	}
	if err := s.repo.CreateCustomer(ctx, nil, customer); err != nil {
		s.logger.Error("Ошибка при создании клиента", zap.String("email", customer.Email), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Клиент создан", zap.String("id", customer.ID.String()))

	return s.FindCustomer(ctx, customer.ID)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, payload dto.UpdateCustomerDTO) (*dto.CustomerDTO, error) {
	customer, err := s.repo.FindCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name.Valid {
		customer.Name = strings.TrimSpace(payload.Name.String)
	}
	if payload.Email.Valid {
		customer.Email = strings.ToLower(strings.TrimSpace(payload.Email.String))
	}
	if payload.PhoneNumber.Valid {
		customer.PhoneNumber = optionalString(payload.PhoneNumber.String)
	}
	if payload.Document.Valid {
		customer.Document = optionalString(payload.Document.String)
	}
	if payload.Address.Valid {
		customer.Address = optionalString(payload.Address.String)
	}
	if payload.IsActive.Valid {
		customer.IsActive = payload.IsActive.Bool
	}

	if err := s.repo.UpdateCustomer(ctx, nil, *customer); err != nil {
		s.logger.Error("Ошибка при обновлении клиента", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return s.FindCustomer(ctx, id)
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCustomer(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Клиент удалён", zap.String("id", id.String()))
	return nil
}
