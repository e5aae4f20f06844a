package controller

import (
	"net/http"

	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/service"
	"github.com/PriyanshVijay26/quiz-master/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// ListQuizzes godoc
// @Summary 测验列表
// @Tags 题库管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Param   chapterId path int true "章节ID"
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Failure 404 {object} util.Response "章节不存在"
// @Router /api/subjects/{subjectId}/chapters/{chapterId}/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	chapterID, ok := pathID(ctx, "chapterId", util.ErrChapterNotFound)
	if !ok {
		return
	}

	quizzes, err := c.QuizService.List(chapterID)
	if err != nil {
		util.HandleError(ctx, "Failed to fetch quizzes", err)
		return
	}
	util.Success(ctx, quizzes)
}

// GetQuiz godoc
// @Summary 测验详情
// @Tags 题库管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Param   chapterId path int true "章节ID"
// @Param   quizId path int true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/subjects/{subjectId}/chapters/{chapterId}/quizzes/{quizId} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	chapterID, ok := pathID(ctx, "chapterId", util.ErrChapterNotFound)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "quizId", util.ErrQuizNotFound)
	if !ok {
		return
	}

	quiz, err := c.QuizService.Get(chapterID, id)
	if err != nil {
		util.HandleError(ctx, "Failed to fetch quiz", err)
		return
	}
	util.Success(ctx, quiz)
}

// CreateQuiz godoc
// @Summary 创建测验
// @Description date_of_quiz 格式 YYYY-MM-DD，time_duration 格式 HH:MM
// @Tags 题库管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Param   chapterId path int true "章节ID"
// @Param   body body service.QuizInput true "测验信息"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response "日期或时长格式错误"
// @Failure 404 {object} util.Response "章节不存在"
// @Router /api/subjects/{subjectId}/chapters/{chapterId}/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}
	chapterID, ok := pathID(ctx, "chapterId", util.ErrChapterNotFound)
	if !ok {
		return
	}

	var req service.QuizInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Create(ctx.Request.Context(), chapterID, req)
	if err != nil {
		util.HandleError(ctx, "Failed to create quiz", err)
		return
	}
	util.Created(ctx, "Quiz created successfully", quiz)
}

// UpdateQuiz godoc
// @Summary 更新测验
// @Tags 题库管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Param   chapterId path int true "章节ID"
// @Param   quizId path int true "测验ID"
// @Param   body body service.QuizInput true "需要修改的字段"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response "日期或时长格式错误"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/subjects/{subjectId}/chapters/{chapterId}/quizzes/{quizId} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}
	chapterID, ok := pathID(ctx, "chapterId", util.ErrChapterNotFound)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "quizId", util.ErrQuizNotFound)
	if !ok {
		return
	}

	var req service.QuizInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Update(ctx.Request.Context(), chapterID, id, req)
	if err != nil {
		util.HandleError(ctx, "Failed to update quiz", err)
		return
	}
	util.Message(ctx, http.StatusOK, "Quiz updated successfully", quiz)
}

// DeleteQuiz godoc
// @Summary 删除测验
// @Tags 题库管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Param   chapterId path int true "章节ID"
// @Param   quizId path int true "测验ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/subjects/{subjectId}/chapters/{chapterId}/quizzes/{quizId} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}
	chapterID, ok := pathID(ctx, "chapterId", util.ErrChapterNotFound)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "quizId", util.ErrQuizNotFound)
	if !ok {
		return
	}

	if err := c.QuizService.Delete(ctx.Request.Context(), chapterID, id); err != nil {
		util.HandleError(ctx, "Failed to delete quiz", err)
		return
	}
	util.Message(ctx, http.StatusOK, "Quiz deleted successfully", nil)
}

// UserListQuizzes godoc
// @Summary 测验列表（用户端）
// @Tags 用户题库
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Param   chapterId path int true "章节ID"
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Router /api/user/subjects/{subjectId}/chapters/{chapterId}/quizzes [get]
func (c *QuizController) UserListQuizzes(ctx *gin.Context) {
	chapterID, ok := pathID(ctx, "chapterId", util.ErrChapterNotFound)
	if !ok {
		return
	}

	quizzes, err := c.QuizService.ListCached(ctx.Request.Context(), chapterID)
	if err != nil {
		util.HandleError(ctx, "Failed to fetch quizzes", err)
		return
	}
	util.Success(ctx, quizzes)
}
