package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"sales-system/internal/dto"
	"sales-system/internal/repositories"
	"sales-system/pkg/config"
	apperrors "sales-system/pkg/errors"
	"sales-system/pkg/service"
	"sales-system/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.AuthResponseDTO, error)
	Me(ctx context.Context) (*dto.UserDTO, error)
}

type AuthService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	jwtSvc    service.JWTService
	logger    *zap.Logger
	cfg       config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
	cfg config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		jwtSvc:    jwtSvc,
		logger:    logger,
		cfg:       cfg,
	}
}

func loginAttemptsKey(email string) string { return "login_attempts:" + email }
func lockoutKey(email string) string       { return "lockout:" + email }

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	logger := s.logger.With(zap.String("email", email))

	if _, err := s.cacheRepo.Get(ctx, lockoutKey(email)); err == nil {
		logger.Warn("Попытка входа в заблокированную учётную запись")
		return nil, apperrors.ErrAccountLocked
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.registerFailedAttempt(ctx, email, logger)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.registerFailedAttempt(ctx, email, logger)
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive() {
		logger.Warn("Вход неактивного пользователя", zap.String("status", string(user.Status)))
		return nil, apperrors.ErrUserNotActive
	}

	if err := s.cacheRepo.Del(ctx, loginAttemptsKey(email), lockoutKey(email)); err != nil {
		logger.Warn("Не удалось сбросить счётчик попыток входа", zap.Error(err))
	}

	access, refresh, err := s.jwtSvc.GenerateTokens(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("не удалось выпустить токены: %w", err)
	}
	logger.Info("Успешный вход", zap.String("user_id", user.ID.String()))

	return &dto.AuthResponseDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwtSvc.GetAccessTokenTTL().Seconds()),
		User:         toUserResponseDTO(*user),
	}, nil
}

// registerFailedAttempt считает неудачные попытки и ставит блокировку на LockoutDuration.
func (s *AuthService) registerFailedAttempt(ctx context.Context, email string, logger *zap.Logger) {
	key := loginAttemptsKey(email)
	attempts, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		logger.Warn("Не удалось учесть попытку входа", zap.Error(err))
		return
	}
	if attempts == 1 {
		if _, err := s.cacheRepo.Expire(ctx, key, s.cfg.LockoutDuration); err != nil {
			logger.Warn("Не удалось установить TTL счётчика", zap.Error(err))
		}
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		if err := s.cacheRepo.Set(ctx, lockoutKey(email), "locked", s.cfg.LockoutDuration); err != nil {
			logger.Warn("Не удалось заблокировать учётную запись", zap.Error(err))
		}
		_ = s.cacheRepo.Del(ctx, key)
		logger.Warn("Учётная запись заблокирована", zap.Int64("attempts", attempts))
	}
}

func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.AuthResponseDTO, error) {
	claims, err := s.jwtSvc.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	user, err := s.userRepo.FindUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive() {
		return nil, apperrors.ErrUserNotActive
	}

	access, refresh, err := s.jwtSvc.GenerateTokens(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("не удалось выпустить токены: %w", err)
	}

	return &dto.AuthResponseDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwtSvc.GetAccessTokenTTL().Seconds()),
		User:         toUserResponseDTO(*user),
	}, nil
}

func (s *AuthService) Me(ctx context.Context) (*dto.UserDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	user, err := s.userRepo.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := toUserResponseDTO(*user)
	return &res, nil
}
