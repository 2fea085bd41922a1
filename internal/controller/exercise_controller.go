package controller

import (
	"strconv"

	"github.com/SilverKain/Orthography/internal/service"
	"github.com/SilverKain/Orthography/internal/util"
	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	ExerciseService *service.ExerciseService
}

func NewExerciseController(exerciseService *service.ExerciseService) *ExerciseController {
	return &ExerciseController{ExerciseService: exerciseService}
}

// GetAll godoc
// @Summary Результаты всех упражнений
// @Tags Упражнения
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.ExerciseResult}
// @Router /api/exercises [get]
func (c *ExerciseController) GetAll(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	results, err := c.ExerciseService.GetAllResults(ctx.Request.Context(), uid)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// Get godoc
// @Summary Результат упражнения
// @Tags Упражнения
// @Produce  json
// @Security ApiKeyAuth
// @Param   exerciseId path string true "Идентификатор упражнения"
// @Success 200 {object} util.Response{data=model.ExerciseResult}
// @Failure 404 {object} util.Response "Результат не найден"
// @Router /api/exercises/{exerciseId} [get]
func (c *ExerciseController) Get(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	result, err := c.ExerciseService.GetResult(ctx.Request.Context(), uid, ctx.Param("exerciseId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if result == nil {
		util.NotFound(ctx, "Результат упражнения не найден")
		return
	}
	util.Success(ctx, result)
}

// SaveResult godoc
// @Summary Записать попытку упражнения
// @Description Перезаписывает последний результат и дописывает попытку в историю
// @Tags Упражнения
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   exerciseId path string true "Идентификатор упражнения"
// @Param   body body service.ExerciseAttempt true "Данные попытки"
// @Success 200 {object} util.Response{data=model.ExerciseResult}
// @Failure 400 {object} util.Response "Некорректные данные"
// @Router /api/exercises/{exerciseId} [post]
func (c *ExerciseController) SaveResult(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	var attempt service.ExerciseAttempt
	if err := ctx.ShouldBindJSON(&attempt); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ExerciseService.SaveResult(ctx.Request.Context(), uid, ctx.Param("exerciseId"), attempt)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Stats godoc
// @Summary Сводка по упражнениям
// @Description Включает топ-10 типичных ошибок по частоте
// @Tags Упражнения
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.ExerciseStats}
// @Router /api/exercises/stats [get]
func (c *ExerciseController) Stats(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	stats, err := c.ExerciseService.ExerciseStats(ctx.Request.Context(), uid)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// NeedingReview godoc
// @Summary Упражнения для повторения
// @Tags Упражнения
// @Produce  json
// @Security ApiKeyAuth
// @Param   threshold query int false "Порог балла (по умолчанию 70)"
// @Success 200 {object} util.Response{data=[]model.ExerciseResult}
// @Router /api/exercises/needing-review [get]
func (c *ExerciseController) NeedingReview(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	threshold, _ := strconv.Atoi(ctx.Query("threshold"))

	results, err := c.ExerciseService.NeedingReview(ctx.Request.Context(), uid, threshold)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// Recent godoc
// @Summary Последние попытки
// @Tags Упражнения
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "Сколько попыток вернуть (по умолчанию 5)"
// @Success 200 {object} util.Response{data=[]model.ExerciseResult}
// @Router /api/exercises/recent [get]
func (c *ExerciseController) Recent(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "5"))
	if err != nil || limit <= 0 {
		limit = 5
	}

	results, err := c.ExerciseService.RecentAttempts(ctx.Request.Context(), uid, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}
