package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/repositories"
	"repair-system/pkg/config"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/service"
	"repair-system/pkg/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	loginAttemptsKeyFmt = "auth:login_attempts:%s"
	loginLockoutKeyFmt  = "auth:login_lockout:%s"
	resetCodeKeyFmt     = "auth:reset_code:%s"
	resetAttemptsKeyFmt = "auth:reset_attempts:%s"
	resetSessionKeyFmt  = "auth:reset_session:%s"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	RefreshTokens(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.TokenPairDTO, error)
	Register(ctx context.Context, payload dto.RegisterStaffDTO) (*entities.Staff, error)
	RequestPasswordReset(ctx context.Context, payload dto.ResetPasswordRequestDTO) error
	VerifyResetCode(ctx context.Context, payload dto.VerifyCodeDTO) (*dto.VerifyCodeResponseDTO, error)
	ResetPassword(ctx context.Context, payload dto.ResetPasswordDTO) error
}

type AuthService struct {
	staffRepo  repositories.StaffRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	authConfig config.AuthConfig
	logger     *zap.Logger
}

func NewAuthService(
	staffRepo repositories.StaffRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	authConfig config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		staffRepo:  staffRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		authConfig: authConfig,
		logger:     logger,
	}
}

// Login проверяет пару логин/пароль. После MaxLoginAttempts неудачных
// попыток учётная запись блокируется на LockoutDuration; счётчик живёт
// в Redis и сбрасывается при успешном входе.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	lockoutKey := fmt.Sprintf(loginLockoutKeyFmt, payload.Login)
	if _, err := s.cacheRepo.Get(ctx, lockoutKey); err == nil {
		return nil, apperrors.NewHttpError(
			429,
			"Слишком много неудачных попыток входа. Попробуйте позже.",
			nil, nil,
		)
	} else if !errors.Is(err, redis.Nil) {
		return nil, err
	}

	staff, err := s.staffRepo.FindStaffByLogin(ctx, payload.Login)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, s.registerFailedLogin(ctx, payload.Login)
		}
		return nil, err
	}

	if err = utils.ComparePasswords(staff.Password, payload.Password); err != nil {
		return nil, s.registerFailedLogin(ctx, payload.Login)
	}

	attemptsKey := fmt.Sprintf(loginAttemptsKeyFmt, payload.Login)
	if err = s.cacheRepo.Del(ctx, attemptsKey); err != nil {
		s.logger.Warn("Не удалось сбросить счётчик попыток входа", zap.Error(err))
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(staff.ID)
	if err != nil {
		s.logger.Error("Ошибка при генерации токенов", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Успешный вход", zap.Uint64("staffId", staff.ID))
	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) registerFailedLogin(ctx context.Context, login string) error {
	attemptsKey := fmt.Sprintf(loginAttemptsKeyFmt, login)
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("Не удалось увеличить счётчик попыток входа", zap.Error(err))
		return apperrors.ErrInvalidCredentials
	}
	if attempts == 1 {
		if _, err = s.cacheRepo.Expire(ctx, attemptsKey, s.authConfig.LockoutDuration); err != nil {
			s.logger.Warn("Не удалось выставить TTL счётчика попыток входа", zap.Error(err))
		}
	}
	if attempts >= int64(s.authConfig.MaxLoginAttempts) {
		lockoutKey := fmt.Sprintf(loginLockoutKeyFmt, login)
		if err = s.cacheRepo.Set(ctx, lockoutKey, "locked", s.authConfig.LockoutDuration); err != nil {
			s.logger.Warn("Не удалось заблокировать учётную запись", zap.Error(err))
		}
		s.logger.Warn("Учётная запись временно заблокирована", zap.String("login", login))
	}
	return apperrors.ErrInvalidCredentials
}

func (s *AuthService) RefreshTokens(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	if _, err = s.staffRepo.FindStaffByID(ctx, claims.StaffID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(claims.StaffID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) Register(ctx context.Context, payload dto.RegisterStaffDTO) (*entities.Staff, error) {
	hashedPassword, err := utils.HashPassword(payload.Password)
	if err != nil {
		s.logger.Error("Ошибка при хешировании пароля", zap.Error(err))
		return nil, err
	}

	staff, err := s.staffRepo.CreateStaff(ctx, payload, hashedPassword)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Зарегистрирован новый сотрудник",
		zap.Uint64("staffId", staff.ID),
		zap.String("role", staff.Role),
	)
	return staff, nil
}

// RequestPasswordReset кладёт шестизначный код в Redis на ResetCodeTTL.
// Наличие учётной записи с таким email не раскрывается: ответ всегда
// одинаковый.
func (s *AuthService) RequestPasswordReset(ctx context.Context, payload dto.ResetPasswordRequestDTO) error {
	staff, err := s.staffRepo.FindStaffByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}

	code, err := generateResetCode()
	if err != nil {
		return err
	}

	codeKey := fmt.Sprintf(resetCodeKeyFmt, payload.Email)
	if err = s.cacheRepo.Set(ctx, codeKey, code, s.authConfig.ResetCodeTTL); err != nil {
		return err
	}

	// TODO: отправлять код письмом, когда появится SMTP-шлюз.
	s.logger.Info("Выдан код восстановления пароля",
		zap.Uint64("staffId", staff.ID),
		zap.String("email", payload.Email),
	)
	return nil
}

// VerifyResetCode сверяет код и выдаёт одноразовый токен сессии сброса.
// Код сгорает после MaxResetAttempts неверных вводов или первого верного.
func (s *AuthService) VerifyResetCode(ctx context.Context, payload dto.VerifyCodeDTO) (*dto.VerifyCodeResponseDTO, error) {
	codeKey := fmt.Sprintf(resetCodeKeyFmt, payload.Email)
	storedCode, err := s.cacheRepo.Get(ctx, codeKey)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NewHttpError(400, "Код недействителен или истёк.", nil, nil)
		}
		return nil, err
	}

	if storedCode != payload.Code {
		attemptsKey := fmt.Sprintf(resetAttemptsKeyFmt, payload.Email)
		attempts, incrErr := s.cacheRepo.Incr(ctx, attemptsKey)
		if incrErr == nil {
			if attempts == 1 {
				_, _ = s.cacheRepo.Expire(ctx, attemptsKey, s.authConfig.ResetCodeTTL)
			}
			if attempts >= int64(s.authConfig.MaxResetAttempts) {
				_ = s.cacheRepo.Del(ctx, codeKey, attemptsKey)
			}
		}
		return nil, apperrors.NewHttpError(400, "Неверный код восстановления.", nil, nil)
	}

	staff, err := s.staffRepo.FindStaffByEmail(ctx, payload.Email)
	if err != nil {
		return nil, err
	}

	resetToken := uuid.NewString()
	sessionKey := fmt.Sprintf(resetSessionKeyFmt, resetToken)
	if err = s.cacheRepo.Set(ctx, sessionKey, staff.ID, s.authConfig.ResetSessionTTL); err != nil {
		return nil, err
	}

	attemptsKey := fmt.Sprintf(resetAttemptsKeyFmt, payload.Email)
	if err = s.cacheRepo.Del(ctx, codeKey, attemptsKey); err != nil {
		s.logger.Warn("Не удалось удалить код восстановления", zap.Error(err))
	}

	return &dto.VerifyCodeResponseDTO{ResetToken: resetToken}, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, payload dto.ResetPasswordDTO) error {
	sessionKey := fmt.Sprintf(resetSessionKeyFmt, payload.ResetToken)
	storedID, err := s.cacheRepo.Get(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return apperrors.NewHttpError(400, "Сессия сброса пароля недействительна или истекла.", nil, nil)
		}
		return err
	}

	var staffID uint64
	if _, err = fmt.Sscan(storedID, &staffID); err != nil {
		return apperrors.ErrInvalidToken
	}

	hashedPassword, err := utils.HashPassword(payload.NewPassword)
	if err != nil {
		return err
	}

	if err = s.staffRepo.UpdatePassword(ctx, staffID, hashedPassword); err != nil {
		return err
	}

	if err = s.cacheRepo.Del(ctx, sessionKey); err != nil {
		s.logger.Warn("Не удалось удалить сессию сброса пароля", zap.Error(err))
	}

	s.logger.Info("Пароль обновлён", zap.Uint64("staffId", staffID))
	return nil
}

func generateResetCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
