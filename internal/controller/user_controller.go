package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SilverKain/Orthography/internal/repository"
	"github.com/SilverKain/Orthography/internal/service"
	"github.com/SilverKain/Orthography/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserController struct {
	AuthService    *service.AuthService
	StorageService *service.StorageService
	UserRepo       *repository.UserRepository
}

func NewUserController(authService *service.AuthService, storageService *service.StorageService, userRepo *repository.UserRepository) *UserController {
	return &UserController{
		AuthService:    authService,
		StorageService: storageService,
		UserRepo:       userRepo,
	}
}

// Me godoc
// @Summary Текущий пользователь
// @Tags Пользователь
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.UserInfo}
// @Router /api/users/me [get]
func (c *UserController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	user, err := c.UserRepo.FindByID(claims.UserID)
	if err != nil {
		util.NotFound(ctx, util.ErrUserNotFound.Error())
		return
	}
	util.Success(ctx, user.Info())
}

// UpdateProfileRequest — правка профиля.
type UpdateProfileRequest struct {
	DisplayName string `json:"displayName" binding:"required"`
	PhotoURL    string `json:"photoURL"`
}

// UpdateProfile godoc
// @Summary Изменить профиль
// @Description Меняет имя; ссылка на аватар обновляется только если передана
// @Tags Пользователь
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body UpdateProfileRequest true "Новые данные профиля"
// @Success 200 {object} util.Response{data=model.UserInfo}
// @Failure 404 {object} util.Response "Пользователь не найден"
// @Router /api/users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	info, err := c.AuthService.UpdateProfile(ctx.Request.Context(), claims.UserID, req.DisplayName, req.PhotoURL)
	if err != nil {
		util.NotFound(ctx, util.ErrUserNotFound.Error())
		return
	}
	util.Success(ctx, info)
}

// UploadAvatar godoc
// @Summary Загрузить аватар
// @Tags Пользователь
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "Изображение"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "Файл не передан"
// @Router /api/users/me/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "Файл не передан")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	filename := fmt.Sprintf("avatars/%s%s", claims.UserID, ext)
	contentType := file.Header.Get("Content-Type")

	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, file.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	user, err := c.UserRepo.FindByID(claims.UserID)
	if err != nil {
		util.NotFound(ctx, util.ErrUserNotFound.Error())
		return
	}
	user.PhotoURL = url
	if err := c.UserRepo.Update(user); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"photoURL": url})
}

// UploadPronunciation godoc
// @Summary Загрузить произношение слова
// @Description Перекодирует запись в моно-MP3 и кладёт в хранилище
// @Tags Пользователь
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   wordId path string true "Идентификатор слова"
// @Param   file formData file true "Аудиозапись"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "Файл не передан"
// @Router /api/dictionary/{wordId}/pronunciation [post]
func (c *UserController) UploadPronunciation(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	wordID := ctx.Param("wordId")

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "Файл не передан")
		return
	}

	tmpDir := os.TempDir()
	rawPath := filepath.Join(tmpDir, uuid.New().String()+filepath.Ext(file.Filename))
	if err := ctx.SaveUploadedFile(file, rawPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(rawPath)

	mp3Path := strings.TrimSuffix(rawPath, filepath.Ext(rawPath)) + ".mp3"
	if err := util.TranscodeToMP3(rawPath, mp3Path); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(mp3Path)

	info, err := util.GetAudioInfo(mp3Path)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := fmt.Sprintf("pronunciations/%s/%s.mp3", claims.UserID, wordID)
	url, err := c.StorageService.UploadFile(ctx.Request.Context(), filename, mp3Path, "audio/mpeg")
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"audioURL": url, "duration": info.Duration})
}
