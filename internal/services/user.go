package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sales-system/internal/dto"
	"sales-system/internal/entities"
	"sales-system/internal/repositories"
	apperrors "sales-system/pkg/errors"
	"sales-system/pkg/types"
	"sales-system/pkg/utils"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error)
	FindUser(ctx context.Context, id uuid.UUID) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id uuid.UUID, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type UserService struct {
	repo   repositories.UserRepositoryInterface
	logger *zap.Logger
}

func NewUserService(repo repositories.UserRepositoryInterface, logger *zap.Logger) UserServiceInterface {
	return &UserService{repo: repo, logger: logger}
}

// toUserResponseDTO никогда не отдаёт хеш пароля.
func toUserResponseDTO(u entities.User) dto.UserDTO {
	return dto.UserDTO{
		ID:          u.ID.String(),
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
		Status:      string(u.Status),
		CreatedAt:   u.CreatedAt.Format(dto.TimeLayout),
		UpdatedAt:   u.UpdatedAt.Format(dto.TimeLayout),
	}
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error) {
	users, total, err := s.repo.GetUsers(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		result = append(result, toUserResponseDTO(u))
	}
	return result, total, nil
}

func (s *UserService) FindUser(ctx context.Context, id uuid.UUID) (*dto.UserDTO, error) {
	user, err := s.repo.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}
	res := toUserResponseDTO(*user)
	return &res, nil
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error) {
	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user := entities.User{
		ID:          uuid.New(),
		Username:    strings.TrimSpace(payload.Username),
		Email:       strings.ToLower(strings.TrimSpace(payload.Email)),
		PhoneNumber: optionalString(payload.PhoneNumber),
		Password:    hash,
		Role:        entities.UserRole(payload.Role),
		Status:      entities.UserStatus(payload.Status),
	}
	if err := s.repo.CreateUser(ctx, nil, user); err != nil {
		s.logger.Error("Ошибка при создании пользователя", zap.String("email", user.Email), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Пользователь создан",
		zap.String("id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	return s.FindUser(ctx, user.ID)
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	user, err := s.repo.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Username.Valid {
		user.Username = strings.TrimSpace(payload.Username.String)
	}
	if payload.Email.Valid {
		user.Email = strings.ToLower(strings.TrimSpace(payload.Email.String))
	}
	if payload.PhoneNumber.Valid {
		user.PhoneNumber = optionalString(payload.PhoneNumber.String)
	}
	if payload.Password.Valid {
		hash, err := utils.HashPassword(payload.Password.String)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	if payload.Role.Valid {
		user.Role = entities.UserRole(payload.Role.String)
	}
	if payload.Status.Valid {
		user.Status = entities.UserStatus(payload.Status.String)
	}

	if err := s.repo.UpdateUser(ctx, nil, *user); err != nil {
		s.logger.Error("Ошибка при обновлении пользователя", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return s.FindUser(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if actorID, err := utils.GetUserIDFromCtx(ctx); err == nil && actorID == id {
		return apperrors.NewHttpError(http.StatusBadRequest, "Нельзя удалить собственную учётную запись", nil, nil)
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Пользователь удалён", zap.String("id", id.String()))
	return nil
}
