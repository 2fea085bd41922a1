package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SilverKain/Orthography/internal/service"
	"github.com/SilverKain/Orthography/internal/util"
	"github.com/gin-gonic/gin"
)

type DictionaryController struct {
	DictionaryService *service.DictionaryService
}

func NewDictionaryController(dictionaryService *service.DictionaryService) *DictionaryController {
	return &DictionaryController{DictionaryService: dictionaryService}
}

func respondDictionaryError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrWordNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	util.LogInternalError(ctx, err)
}

// AddWordRequest — новое слово словаря.
type AddWordRequest struct {
	Word       string `json:"word" binding:"required"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// Add godoc
// @Summary Добавить слово
// @Description Идентификатор выводится из нормализованной формы слова, повторное добавление обновляет запись
// @Tags Словарь
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AddWordRequest true "Слово с определением"
// @Success 201 {object} util.Response{data=service.Word}
// @Failure 400 {object} util.Response "Пустое слово"
// @Router /api/dictionary [post]
func (c *DictionaryController) Add(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	var req AddWordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	word, err := c.DictionaryService.AddWord(ctx.Request.Context(), uid, req.Word, req.Definition, req.Example)
	if err != nil {
		if errors.Is(err, util.ErrWordNotFound) {
			util.BadRequest(ctx, "Слово не может быть пустым")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, word)
}

// GetAll godoc
// @Summary Словарь пользователя
// @Description Все слова, новые первыми; поддерживает поиск подстроки через ?q=
// @Tags Словарь
// @Produce  json
// @Security ApiKeyAuth
// @Param   q query string false "Поисковый запрос"
// @Param   unmastered query bool false "Только неизученные слова"
// @Success 200 {object} util.Response{data=[]service.Word}
// @Router /api/dictionary [get]
func (c *DictionaryController) GetAll(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	if q := ctx.Query("q"); q != "" {
		words, err := c.DictionaryService.Search(ctx.Request.Context(), uid, q)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, words)
		return
	}

	if ctx.Query("unmastered") == "true" {
		words, err := c.DictionaryService.UnmasteredWords(ctx.Request.Context(), uid)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, words)
		return
	}

	words, err := c.DictionaryService.GetAllWords(ctx.Request.Context(), uid)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, words)
}

// UpdateWordRequest — правка определения и примера.
type UpdateWordRequest struct {
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// Update godoc
// @Summary Изменить слово
// @Tags Словарь
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   wordId path string true "Идентификатор слова"
// @Param   body body UpdateWordRequest true "Новые определение и пример"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Слово не найдено"
// @Router /api/dictionary/{wordId} [put]
func (c *DictionaryController) Update(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	var req UpdateWordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.DictionaryService.UpdateWord(ctx.Request.Context(), uid, ctx.Param("wordId"), req.Definition, req.Example); err != nil {
		respondDictionaryError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Слово обновлено"})
}

// MasteredRequest — отметка изученности.
type MasteredRequest struct {
	Mastered bool `json:"mastered"`
}

// SetMastered godoc
// @Summary Отметить слово изученным
// @Tags Словарь
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   wordId path string true "Идентификатор слова"
// @Param   body body MasteredRequest true "Флаг изученности"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Слово не найдено"
// @Router /api/dictionary/{wordId}/mastered [put]
func (c *DictionaryController) SetMastered(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	var req MasteredRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.DictionaryService.MarkMastered(ctx.Request.Context(), uid, ctx.Param("wordId"), req.Mastered); err != nil {
		respondDictionaryError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Статус слова обновлён"})
}

// Delete godoc
// @Summary Удалить слово
// @Tags Словарь
// @Produce  json
// @Security ApiKeyAuth
// @Param   wordId path string true "Идентификатор слова"
// @Success 200 {object} util.Response
// @Router /api/dictionary/{wordId} [delete]
func (c *DictionaryController) Delete(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	if err := c.DictionaryService.DeleteWord(ctx.Request.Context(), uid, ctx.Param("wordId")); err != nil {
		respondDictionaryError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Слово удалено"})
}

// Stats godoc
// @Summary Сводка по словарю
// @Tags Словарь
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.DictionaryStats}
// @Router /api/dictionary/stats [get]
func (c *DictionaryController) Stats(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	stats, err := c.DictionaryService.DictionaryStats(ctx.Request.Context(), uid)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// Export godoc
// @Summary Выгрузка словаря в XLSX
// @Description Отдаёт словарь таблицей для офлайн-повторения; токен можно передать через ?token=
// @Tags Словарь
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Success 200 {file} binary
// @Router /api/dictionary/export [get]
func (c *DictionaryController) Export(ctx *gin.Context) {
	uid := util.GetUserFromContext(ctx).UserID

	buf, err := c.DictionaryService.ExportXLSX(ctx.Request.Context(), uid)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := fmt.Sprintf("dictionary-%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
