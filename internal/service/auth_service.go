package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"net/url"
	"time"

	"github.com/SilverKain/Orthography/internal/config"
	"github.com/SilverKain/Orthography/internal/model"
	"github.com/SilverKain/Orthography/internal/repository"
	"github.com/SilverKain/Orthography/internal/util"
	"github.com/SilverKain/Orthography/pkg/logger"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	loginAttemptLimit  = 10
	loginAttemptWindow = 15 * time.Minute
	resetTokenTTL      = 30 * time.Minute

	defaultGoogleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"
)

// AuthService — хостинг контракта провайдера аутентификации: вход,
// регистрация, Google-вход, сброс пароля и события смены состояния.
// Ошибки несут коды auth/*, перевод в сообщения делается на границе.
type AuthService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client
	Cfg      *config.Config
	Events   *AuthBroker

	// googleTokenInfoURL подменяется в тестах.
	googleTokenInfoURL string
	httpClient         *http.Client
}

func NewAuthService(userRepo *repository.UserRepository, rdb *redis.Client, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:           userRepo,
		Redis:              rdb,
		Cfg:                cfg,
		Events:             NewAuthBroker(),
		googleTokenInfoURL: defaultGoogleTokenInfoURL,
		httpClient:         &http.Client{Timeout: 10 * time.Second},
	}
}

// Register создаёт аккаунт и сразу выдаёт токен.
func (s *AuthService) Register(ctx context.Context, email, password, displayName string) (*model.UserInfo, string, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", util.NewAuthError(util.AuthInvalidEmail)
	}
	if len(password) < 6 {
		return nil, "", util.NewAuthError(util.AuthWeakPassword)
	}

	if _, err := s.UserRepo.FindByEmail(email); err == nil {
		return nil, "", util.NewAuthError(util.AuthEmailAlreadyInUse)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Email:       email,
		Password:    string(hashed),
		DisplayName: displayName,
		Role:        model.Student,
		LastLogin:   time.Now(),
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, "", err
	}

	return s.issueToken(user)
}

// Login проверяет пароль; после десяти неудач подряд email
// блокируется на пятнадцать минут.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.UserInfo, string, error) {
	if blocked, err := s.tooManyAttempts(ctx, email); err == nil && blocked {
		return nil, "", util.NewAuthError(util.AuthTooManyRequests)
	}

	user, err := s.UserRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", util.NewAuthError(util.AuthUserNotFound)
	}
	if err != nil {
		return nil, "", err
	}
	if user.Disabled {
		return nil, "", util.NewAuthError(util.AuthUserDisabled)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.recordFailedAttempt(ctx, email)
		return nil, "", util.NewAuthError(util.AuthWrongPassword)
	}

	s.clearAttempts(ctx, email)
	user.LastLogin = time.Now()
	if err := s.UserRepo.Update(user); err != nil {
		return nil, "", err
	}

	return s.issueToken(user)
}

type googleTokenInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// LoginWithGoogle проверяет ID-токен через tokeninfo и заводит аккаунт
// при первом входе.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (*model.UserInfo, string, error) {
	info, err := s.verifyGoogleToken(ctx, idToken)
	if err != nil {
		return nil, "", err
	}

	user, err := s.UserRepo.FindByGoogleID(info.Sub)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = s.UserRepo.FindByEmail(info.Email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = &model.User{
				Email:       info.Email,
				DisplayName: info.Name,
				PhotoURL:    info.Picture,
				GoogleID:    info.Sub,
				Role:        model.Student,
				LastLogin:   time.Now(),
			}
			if err := s.UserRepo.Create(user); err != nil {
				return nil, "", err
			}
		} else if err != nil {
			return nil, "", err
		} else {
			user.GoogleID = info.Sub
		}
	} else if err != nil {
		return nil, "", err
	}

	if user.Disabled {
		return nil, "", util.NewAuthError(util.AuthUserDisabled)
	}

	user.LastLogin = time.Now()
	if user.PhotoURL == "" {
		user.PhotoURL = info.Picture
	}
	if err := s.UserRepo.Update(user); err != nil {
		return nil, "", err
	}

	return s.issueToken(user)
}

func (s *AuthService) verifyGoogleToken(ctx context.Context, idToken string) (*googleTokenInfo, error) {
	endpoint := s.googleTokenInfoURL + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, util.NewAuthError(util.AuthNetworkRequestFailed)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, util.NewAuthError(util.AuthNetworkRequestFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, util.NewAuthError(util.AuthInvalidToken)
	}

	var info googleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, util.NewAuthError(util.AuthInvalidToken)
	}
	if info.Sub == "" || info.Email == "" {
		return nil, util.NewAuthError(util.AuthInvalidToken)
	}
	return &info, nil
}

// Logout заносит jti токена в чёрный список до истечения срока
// действия и публикует SignedOut.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := util.ParseJWT(tokenString, s.Cfg.JWT.Secret)
	if err != nil {
		return util.NewAuthError(util.AuthInvalidToken)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl > 0 {
		key := blacklistKey(claims.ID)
		if err := s.Redis.Set(ctx, key, "1", ttl).Err(); err != nil {
			return err
		}
	}

	s.Events.publish(AuthEvent{Type: SignedOut})
	return nil
}

// ResetPassword выписывает одноразовый токен сброса с TTL. Отправка
// письма здесь ограничивается журналом.
func (s *AuthService) ResetPassword(ctx context.Context, email string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", util.NewAuthError(util.AuthUserNotFound)
	}
	if err != nil {
		return "", err
	}

	token := uuid.New().String()
	if err := s.Redis.Set(ctx, resetKey(token), user.ID, resetTokenTTL).Err(); err != nil {
		return "", err
	}

	logger.Log.Info("password reset token issued",
		zap.String("email", email),
		zap.Duration("ttl", resetTokenTTL),
	)
	return fmt.Sprintf("Письмо для сброса пароля отправлено на %s", email), nil
}

// ConfirmPasswordReset меняет пароль по одноразовому токену.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 6 {
		return util.NewAuthError(util.AuthWeakPassword)
	}

	userID, err := s.Redis.Get(ctx, resetKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return util.NewAuthError(util.AuthInvalidToken)
	}
	if err != nil {
		return err
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return util.NewAuthError(util.AuthUserNotFound)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	if err := s.UserRepo.Update(user); err != nil {
		return err
	}

	return s.Redis.Del(ctx, resetKey(token)).Err()
}

// UpdateProfile меняет имя и, если передан, аватар.
func (s *AuthService) UpdateProfile(ctx context.Context, uid, displayName, photoURL string) (*model.UserInfo, error) {
	user, err := s.UserRepo.FindByID(uid)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	user.DisplayName = displayName
	if photoURL != "" {
		user.PhotoURL = photoURL
	}
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	info := user.Info()
	return &info, nil
}

// IsTokenRevoked проверяет jti по чёрному списку.
func (s *AuthService) IsTokenRevoked(ctx context.Context, jti string) bool {
	n, err := s.Redis.Exists(ctx, blacklistKey(jti)).Result()
	return err == nil && n > 0
}

func (s *AuthService) issueToken(user *model.User) (*model.UserInfo, string, error) {
	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	info := user.Info()
	s.Events.publish(AuthEvent{Type: SignedIn, User: &info})
	return &info, token, nil
}

func (s *AuthService) tooManyAttempts(ctx context.Context, email string) (bool, error) {
	n, err := s.Redis.Get(ctx, attemptsKey(email)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}
	return n >= loginAttemptLimit, nil
}

func (s *AuthService) recordFailedAttempt(ctx context.Context, email string) {
	key := attemptsKey(email)
	if n, err := s.Redis.Incr(ctx, key).Result(); err == nil && n == 1 {
		s.Redis.Expire(ctx, key, loginAttemptWindow)
	}
}

func (s *AuthService) clearAttempts(ctx context.Context, email string) {
	s.Redis.Del(ctx, attemptsKey(email))
}

func blacklistKey(jti string) string {
	return "auth:blacklist:" + jti
}

func resetKey(token string) string {
	return "auth:reset:" + token
}

func attemptsKey(email string) string {
	return "auth:attempts:" + email
}
