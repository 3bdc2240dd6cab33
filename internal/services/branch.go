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
	"sales-system/pkg/utils"
)

const branchCodeMaxLen = 20

type BranchServiceInterface interface {
	GetBranches(ctx context.Context, filter types.Filter) ([]dto.BranchDTO, uint64, error)
	FindBranch(ctx context.Context, id uuid.UUID) (*dto.BranchDTO, error)
	CreateBranch(ctx context.Context, payload dto.CreateBranchDTO) (*dto.BranchDTO, error)
	UpdateBranch(ctx context.Context, id uuid.UUID, payload dto.UpdateBranchDTO) (*dto.BranchDTO, error)
	DeleteBranch(ctx context.Context, id uuid.UUID) error
}

type BranchService struct {
	repo   repositories.BranchRepositoryInterface
	logger *zap.Logger
}

func NewBranchService(repo repositories.BranchRepositoryInterface, logger *zap.Logger) BranchServiceInterface {
	return &BranchService{repo: repo, logger: logger}
}

func toBranchResponseDTO(b entities.Branch) dto.BranchDTO {
	return dto.BranchDTO{
		ID:          b.ID.String(),
		Name:        b.Name,
		Code:        b.Code,
		Address:     b.Address,
		PhoneNumber: b.PhoneNumber,
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt.Format(dto.TimeLayout),
		UpdatedAt:   b.UpdatedAt.Format(dto.TimeLayout),
	}
}

func (s *BranchService) GetBranches(ctx context.Context, filter types.Filter) ([]dto.BranchDTO, uint64, error) {
	branches, total, err := s.repo.GetBranches(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.BranchDTO, 0, len(branches))
	for _, b := range branches {
		result = append(result, toBranchResponseDTO(b))
	}
	return result, total, nil
}

func (s *BranchService) FindBranch(ctx context.Context, id uuid.UUID) (*dto.BranchDTO, error) {
	branch, err := s.repo.FindBranch(ctx, id)
	if err != nil {
		return nil, err
	}
	res := toBranchResponseDTO(*branch)
	return &res, nil
}

func (s *BranchService) CreateBranch(ctx context.Context, payload dto.CreateBranchDTO) (*dto.BranchDTO, error) {
	code := strings.TrimSpace(payload.Code)
	if code == "" {
		code = utils.GenerateCodeFromName(payload.Name, branchCodeMaxLen)
	}

	branch := entities.Branch{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(payload.Name),
		Code:        code,
		Address:     optionalString(payload.Address),
		PhoneNumber: optionalString(payload.PhoneNumber),
		IsActive:    true,
	}
	if err := s.repo.CreateBranch(ctx, nil, branch); err != nil {
		s.logger.Error("Ошибка при создании филиала", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Филиал создан", zap.String("id", branch.ID.String()), zap.String("code", code))

	return s.FindBranch(ctx, branch.ID)
}

func (s *BranchService) UpdateBranch(ctx context.Context, id uuid.UUID, payload dto.UpdateBranchDTO) (*dto.BranchDTO, error) {
	branch, err := s.repo.FindBranch(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name.Valid {
		branch.Name = strings.TrimSpace(payload.Name.String)
	}
	if payload.Code.Valid {
		branch.Code = strings.TrimSpace(payload.Code.String)
	}
	if payload.Address.Valid {
		branch.Address = optionalString(payload.Address.String)
	}
	if payload.PhoneNumber.Valid {
		branch.PhoneNumber = optionalString(payload.PhoneNumber.String)
	}
	if payload.IsActive.Valid {
		branch.IsActive = payload.IsActive.Bool
	}

	if err := s.repo.UpdateBranch(ctx, nil, *branch); err != nil {
		s.logger.Error("Ошибка при обновлении филиала", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return s.FindBranch(ctx, id)
}

func (s *BranchService) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteBranch(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Филиал удалён", zap.String("id", id.String()))
	return nil
}
