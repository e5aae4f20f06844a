package controller

import (
	"mime/multipart"
	"net/http"

	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/service"
	"github.com/PriyanshVijay26/quiz-master/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// bindQuestion 根据 Content-Type 解析 JSON 或 multipart 表单，图片字段名为 file
func bindQuestion(ctx *gin.Context) (service.QuestionInput, *multipart.FileHeader, bool) {
	var req service.QuestionInput
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return req, nil, false
	}

	var image *multipart.FileHeader
	if ctx.ContentType() == gin.MIMEMultipartPOSTForm {
		if file, err := ctx.FormFile("file"); err == nil {
			image = file
		}
	}
	return req, image, true
}

// ListQuestions godoc
// @Summary 题目列表
// @Tags 题库管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Param   chapterId path int true "章节ID"
// @Param   quizId path int true "测验ID"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/subjects/{subjectId}/chapters/{chapterId}/quizzes/{quizId}/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quizId", util.ErrQuizNotFound)
	if !ok {
		return
	}

	questions, err := c.QuestionService.List(quizID)
	if err != nil {
		util.HandleError(ctx, "Failed to fetch questions", err)
		return
	}
	util.Success(ctx, questions)
}

// GetQuestion godoc
// @Summary 题目详情
// @Tags 题库管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Param   chapterId path int true "章节ID"
// @Param   quizId path int true "测验ID"
// @Param   questionId path int true "题目ID"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/subjects/{subjectId}/chapters/{chapterId}/quizzes/{quizId}/questions/{questionId} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quizId", util.ErrQuizNotFound)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "questionId", util.ErrQuestionNotFound)
	if !ok {
		return
	}

	question, err := c.QuestionService.Get(quizID, id)
	if err != nil {
		util.HandleError(ctx, "Failed to fetch question", err)
		return
	}
	util.Success(ctx, question)
}

// CreateQuestion godoc
// @Summary 创建题目
// @Description 支持 JSON 或 multipart 表单，可选图片字段 file（png/jpg/jpeg/gif）
// @Tags 题库管理
// @Accept  json,mpfd
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Param   chapterId path int true "章节ID"
// @Param   quizId path int true "测验ID"
// @Param   body body service.QuestionInput true "题目信息"
// @Param   file formData file false "题目图片"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response "参数错误"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/subjects/{subjectId}/chapters/{chapterId}/quizzes/{quizId}/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}
	quizID, ok := pathID(ctx, "quizId", util.ErrQuizNotFound)
	if !ok {
		return
	}

	req, image, ok := bindQuestion(ctx)
	if !ok {
		return
	}

	question, err := c.QuestionService.Create(ctx.Request.Context(), quizID, req, image)
	if err != nil {
		util.HandleError(ctx, "Failed to create question", err)
		return
	}
	util.Created(ctx, "Question created successfully", question)
}

// UpdateQuestion godoc
// @Summary 更新题目
// @Tags 题库管理
// @Accept  json,mpfd
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Param   chapterId path int true "章节ID"
// @Param   quizId path int true "测验ID"
// @Param   questionId path int true "题目ID"
// @Param   body body service.QuestionInput true "需要修改的字段"
// @Param   file formData file false "新图片"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/subjects/{subjectId}/chapters/{chapterId}/quizzes/{quizId}/questions/{questionId} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}
	quizID, ok := pathID(ctx, "quizId", util.ErrQuizNotFound)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "questionId", util.ErrQuestionNotFound)
	if !ok {
		return
	}

	req, image, ok := bindQuestion(ctx)
	if !ok {
		return
	}

	question, err := c.QuestionService.Update(ctx.Request.Context(), quizID, id, req, image)
	if err != nil {
		util.HandleError(ctx, "Failed to update question", err)
		return
	}
	util.Message(ctx, http.StatusOK, "Question updated successfully", question)
}

// DeleteQuestion godoc
// @Summary 删除题目
// @Description 同时删除题目图片
// @Tags 题库管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Param   chapterId path int true "章节ID"
// @Param   quizId path int true "测验ID"
// @Param   questionId path int true "题目ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/subjects/{subjectId}/chapters/{chapterId}/quizzes/{quizId}/questions/{questionId} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}
	quizID, ok := pathID(ctx, "quizId", util.ErrQuizNotFound)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "questionId", util.ErrQuestionNotFound)
	if !ok {
		return
	}

	if err := c.QuestionService.Delete(ctx.Request.Context(), quizID, id); err != nil {
		util.HandleError(ctx, "Failed to delete question", err)
		return
	}
	util.Message(ctx, http.StatusOK, "Question deleted successfully", nil)
}

// UserListQuestions godoc
// @Summary 题目列表（用户端）
// @Tags 用户题库
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Param   chapterId path int true "章节ID"
// @Param   quizId path int true "测验ID"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/user/subjects/{subjectId}/chapters/{chapterId}/quizzes/{quizId}/questions [get]
func (c *QuestionController) UserListQuestions(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quizId", util.ErrQuizNotFound)
	if !ok {
		return
	}

	questions, err := c.QuestionService.ListCached(ctx.Request.Context(), quizID)
	if err != nil {
		util.HandleError(ctx, "Failed to fetch questions", err)
		return
	}
	util.Success(ctx, questions)
}
