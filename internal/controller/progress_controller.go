package controller

import (
	"strconv"

	"github.com/SilverKain/Orthography/internal/model"
	"github.com/SilverKain/Orthography/internal/service"
	"github.com/SilverKain/Orthography/internal/util"
	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// GetAll godoc
// @Summary Прогресс по всем урокам
// @Tags Прогресс
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.LessonProgress}
// @Router /api/progress [get]
func (c *ProgressController) GetAll(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	progress, err := c.ProgressService.GetAllProgress(ctx.Request.Context(), uid)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// Get godoc
// @Summary Прогресс по уроку
// @Tags Прогресс
// @Produce  json
// @Security ApiKeyAuth
// @Param   lessonId path string true "Идентификатор урока"
// @Success 200 {object} util.Response{data=model.LessonProgress}
// @Router /api/progress/{lessonId} [get]
func (c *ProgressController) Get(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	progress, err := c.ProgressService.GetLessonProgress(ctx.Request.Context(), uid, ctx.Param("lessonId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if progress == nil {
		util.NotFound(ctx, "Прогресс по уроку не найден")
		return
	}
	util.Success(ctx, progress)
}

// SaveProgressRequest — частичное обновление прогресса урока.
type SaveProgressRequest struct {
	Completed bool `json:"completed"`
	Score     int  `json:"score"`
	TimeSpent int  `json:"timeSpent"`
}

// Save godoc
// @Summary Сохранить прогресс урока
// @Tags Прогресс
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   lessonId path string true "Идентификатор урока"
// @Param   body body SaveProgressRequest true "Поля прогресса"
// @Success 200 {object} util.Response
// @Router /api/progress/{lessonId} [put]
func (c *ProgressController) Save(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	var req SaveProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p := model.LessonProgress{
		LessonID:  ctx.Param("lessonId"),
		Completed: req.Completed,
		Score:     req.Score,
		TimeSpent: req.TimeSpent,
	}
	if err := c.ProgressService.SaveProgress(ctx.Request.Context(), uid, p); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Прогресс сохранён"})
}

// CompleteLessonRequest — завершение урока с итоговым баллом.
type CompleteLessonRequest struct {
	Score int `json:"score"`
}

// Complete godoc
// @Summary Завершить урок
// @Description Отмечает урок завершённым и двигает счётчик завершённых уроков
// @Tags Прогресс
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   lessonId path string true "Идентификатор урока"
// @Param   body body CompleteLessonRequest false "Итоговый балл (по умолчанию 100)"
// @Success 200 {object} util.Response
// @Router /api/progress/{lessonId}/complete [post]
func (c *ProgressController) Complete(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	var req CompleteLessonRequest
	// тело может отсутствовать
	_ = ctx.ShouldBindJSON(&req)

	if err := c.ProgressService.CompleteLesson(ctx.Request.Context(), uid, ctx.Param("lessonId"), req.Score); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Урок завершён"})
}

// StudyTimeRequest — учёт времени в уроке.
type StudyTimeRequest struct {
	Minutes int `json:"minutes" binding:"required,min=1"`
}

// AddStudyTime godoc
// @Summary Добавить время обучения
// @Tags Прогресс
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   lessonId path string true "Идентификатор урока"
// @Param   body body StudyTimeRequest true "Минуты"
// @Success 200 {object} util.Response
// @Router /api/progress/{lessonId}/study-time [post]
func (c *ProgressController) AddStudyTime(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	var req StudyTimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ProgressService.UpdateStudyTime(ctx.Request.Context(), uid, ctx.Param("lessonId"), req.Minutes); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Время учтено"})
}

// ModuleStatsRequest — набор уроков одного модуля.
type ModuleStatsRequest struct {
	LessonIDs []string `json:"lessonIds" binding:"required"`
}

// ModuleStats godoc
// @Summary Сводка по модулю
// @Tags Прогресс
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ModuleStatsRequest true "Уроки модуля"
// @Success 200 {object} util.Response{data=model.ModuleStats}
// @Router /api/progress/module-stats [post]
func (c *ProgressController) ModuleStats(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	var req ModuleStatsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	stats, err := c.ProgressService.ModuleStats(ctx.Request.Context(), uid, req.LessonIDs)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// Recent godoc
// @Summary Последние изученные уроки
// @Tags Прогресс
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "Сколько уроков вернуть (по умолчанию 5)"
// @Success 200 {object} util.Response{data=[]model.LessonProgress}
// @Router /api/progress/recent [get]
func (c *ProgressController) Recent(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "5"))
	if err != nil || limit <= 0 {
		limit = 5
	}

	lessons, err := c.ProgressService.RecentLessons(ctx.Request.Context(), uid, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// UserStats godoc
// @Summary Глобальные счётчики пользователя
// @Tags Прогресс
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.UserStats}
// @Router /api/stats [get]
func (c *ProgressController) UserStats(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	stats, err := c.ProgressService.UserStats(ctx.Request.Context(), uid)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
