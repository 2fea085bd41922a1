package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SilverKain/Orthography/internal/service"
	"github.com/SilverKain/Orthography/internal/util"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// authHTTPStatus подбирает HTTP-код под код провайдера; текст ошибки
// в любом случае берётся из таблицы переводов.
func authHTTPStatus(code string) int {
	switch code {
	case util.AuthUserNotFound:
		return http.StatusNotFound
	case util.AuthTooManyRequests:
		return http.StatusTooManyRequests
	case util.AuthEmailAlreadyInUse:
		return http.StatusConflict
	case util.AuthInvalidToken:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

func respondAuthError(ctx *gin.Context, err error) {
	var authErr *util.AuthError
	if errors.As(err, &authErr) {
		util.Fail(ctx, authHTTPStatus(authErr.Code), util.AuthErrorMessage(authErr.Code))
		return
	}
	util.LogInternalError(ctx, err)
}

// RegisterRequest — данные регистрации.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName"`
}

// Register godoc
// @Summary Регистрация
// @Description Создаёт аккаунт по email и паролю и сразу возвращает токен
// @Tags Аутентификация
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "Данные регистрации"
// @Success 201 {object} util.Response{data=object} "Аккаунт создан"
// @Failure 400 {object} util.Response "Некорректные данные"
// @Failure 409 {object} util.Response "Email уже занят"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, token, err := c.AuthService.Register(ctx.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		respondAuthError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"user": user, "token": token})
}

// LoginRequest — данные входа.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Вход по email и паролю
// @Tags Аутентификация
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "Данные входа"
// @Success 200 {object} util.Response{data=object} "Вход выполнен"
// @Failure 400 {object} util.Response "Неверный пароль"
// @Failure 404 {object} util.Response "Пользователь не найден"
// @Failure 429 {object} util.Response "Слишком много попыток"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, token, err := c.AuthService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondAuthError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"user": user, "token": token})
}

// GoogleLoginRequest — вход через Google.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// LoginWithGoogle godoc
// @Summary Вход через Google
// @Description Проверяет ID-токен Google и при первом входе создаёт аккаунт
// @Tags Аутентификация
// @Accept  json
// @Produce  json
// @Param   body body GoogleLoginRequest true "ID-токен Google"
// @Success 200 {object} util.Response{data=object} "Вход выполнен"
// @Failure 401 {object} util.Response "Недействительный токен"
// @Router /api/auth/google [post]
func (c *AuthController) LoginWithGoogle(ctx *gin.Context) {
	var req GoogleLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, token, err := c.AuthService.LoginWithGoogle(ctx.Request.Context(), req.IDToken)
	if err != nil {
		respondAuthError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"user": user, "token": token})
}

// Logout godoc
// @Summary Выход
// @Description Отзывает текущий токен до конца его срока действия
// @Tags Аутентификация
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "Выход выполнен"
// @Router /api/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	tokenString := strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
	if tokenString == "" {
		tokenString = ctx.Query("token")
	}

	if err := c.AuthService.Logout(ctx.Request.Context(), tokenString); err != nil {
		respondAuthError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Выход выполнен"})
}

// ResetPasswordRequest — запрос письма для сброса пароля.
type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetPassword godoc
// @Summary Сброс пароля
// @Description Выписывает одноразовый токен сброса и отправляет письмо
// @Tags Аутентификация
// @Accept  json
// @Produce  json
// @Param   body body ResetPasswordRequest true "Email аккаунта"
// @Success 200 {object} util.Response{data=object} "Письмо отправлено"
// @Failure 404 {object} util.Response "Пользователь не найден"
// @Router /api/auth/reset-password [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	message, err := c.AuthService.ResetPassword(ctx.Request.Context(), req.Email)
	if err != nil {
		respondAuthError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": message})
}

// ConfirmResetRequest — подтверждение сброса пароля.
type ConfirmResetRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ConfirmPasswordReset godoc
// @Summary Подтверждение сброса пароля
// @Tags Аутентификация
// @Accept  json
// @Produce  json
// @Param   body body ConfirmResetRequest true "Токен сброса и новый пароль"
// @Success 200 {object} util.Response "Пароль изменён"
// @Failure 401 {object} util.Response "Недействительный токен"
// @Router /api/auth/reset-password/confirm [post]
func (c *AuthController) ConfirmPasswordReset(ctx *gin.Context) {
	var req ConfirmResetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AuthService.ConfirmPasswordReset(ctx.Request.Context(), req.Token, req.NewPassword); err != nil {
		respondAuthError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Пароль изменён"})
}
