package controller

import (
	"errors"

	"github.com/SilverKain/Orthography/internal/catalog"
	"github.com/SilverKain/Orthography/internal/service"
	"github.com/SilverKain/Orthography/internal/util"
	"github.com/gin-gonic/gin"
)

type SkillController struct {
	SkillService *service.SkillService
	StaleDays    int
}

func NewSkillController(skillService *service.SkillService, staleDays int) *SkillController {
	return &SkillController{SkillService: skillService, StaleDays: staleDays}
}

func respondSkillError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSkillNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrSkillsNotInitialized):
		util.Fail(ctx, 500, err.Error())
	case errors.Is(err, util.ErrInvalidPractice):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// GetAll godoc
// @Summary Матрица навыков
// @Description Все навыки пользователя; при первом обращении матрица создаётся из каталога
// @Tags Навыки
// @Produce  json
// @Security ApiKeyAuth
// @Param   category query string false "Фильтр по категории (orthography или punctuation)"
// @Success 200 {object} util.Response{data=[]model.Skill}
// @Router /api/skills [get]
func (c *SkillController) GetAll(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	if category := ctx.Query("category"); category != "" {
		skills, err := c.SkillService.GetByCategory(ctx.Request.Context(), uid, catalog.Category(category))
		if err != nil {
			respondSkillError(ctx, err)
			return
		}
		util.Success(ctx, skills)
		return
	}

	skills, err := c.SkillService.GetAll(ctx.Request.Context(), uid)
	if err != nil {
		respondSkillError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}

// Get godoc
// @Summary Один навык
// @Tags Навыки
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Идентификатор навыка"
// @Success 200 {object} util.Response{data=model.Skill}
// @Failure 404 {object} util.Response "Навык не найден"
// @Router /api/skills/{id} [get]
func (c *SkillController) Get(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	skill, err := c.SkillService.Get(ctx.Request.Context(), uid, ctx.Param("id"))
	if err != nil {
		respondSkillError(ctx, err)
		return
	}
	util.Success(ctx, skill)
}

// PracticeRequest — результат одной практики навыка.
type PracticeRequest struct {
	CorrectAnswers int `json:"correctAnswers"`
	TotalAnswers   int `json:"totalAnswers"`
}

// Practice godoc
// @Summary Записать практику
// @Description Доливает ответы в накопленные счётчики и пересчитывает уровень
// @Tags Навыки
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Идентификатор навыка"
// @Param   body body PracticeRequest true "Результат практики"
// @Success 200 {object} util.Response{data=model.PracticeResult}
// @Failure 400 {object} util.Response "Некорректные значения"
// @Failure 404 {object} util.Response "Навык не найден"
// @Router /api/skills/{id}/practice [post]
func (c *SkillController) Practice(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	var req PracticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.SkillService.UpdateFromPractice(ctx.Request.Context(), uid, ctx.Param("id"), req.CorrectAnswers, req.TotalAnswers)
	if err != nil {
		respondSkillError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// DirectUpdateRequest — абсолютные значения счётчиков навыка.
type DirectUpdateRequest struct {
	Progress       int `json:"progress"`
	CorrectAnswers int `json:"correctAnswers"`
	TotalAnswers   int `json:"totalAnswers"`
}

// UpdateDirect godoc
// @Summary Перезаписать счётчики навыка
// @Description Ставит прогресс и счётчики ответов в абсолютные значения, посчитанные клиентом
// @Tags Навыки
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Идентификатор навыка"
// @Param   body body DirectUpdateRequest true "Новые значения"
// @Success 200 {object} util.Response{data=model.PracticeResult}
// @Failure 400 {object} util.Response "Некорректные значения"
// @Failure 404 {object} util.Response "Навык не найден"
// @Router /api/skills/{id} [put]
func (c *SkillController) UpdateDirect(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	var req DirectUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.SkillService.UpdateDirect(ctx.Request.Context(), uid, ctx.Param("id"), req.Progress, req.CorrectAnswers, req.TotalAnswers)
	if err != nil {
		respondSkillError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Stats godoc
// @Summary Сводка по навыкам
// @Tags Навыки
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.SkillStats}
// @Router /api/skills/stats [get]
func (c *SkillController) Stats(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	stats, err := c.SkillService.Stats(ctx.Request.Context(), uid)
	if err != nil {
		respondSkillError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// NeedingPractice godoc
// @Summary Навыки для повторения
// @Description Изученные, но не доведённые до мастерства навыки без недавней практики
// @Tags Навыки
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Skill}
// @Router /api/skills/needing-practice [get]
func (c *SkillController) NeedingPractice(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	skills, err := c.SkillService.NeedingPractice(ctx.Request.Context(), uid, c.StaleDays)
	if err != nil {
		respondSkillError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}

// Reset godoc
// @Summary Сбросить навык
// @Tags Навыки
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Идентификатор навыка"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Навык не найден"
// @Router /api/skills/{id}/reset [post]
func (c *SkillController) Reset(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	if err := c.SkillService.Reset(ctx.Request.Context(), uid, ctx.Param("id")); err != nil {
		respondSkillError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Навык сброшен"})
}
