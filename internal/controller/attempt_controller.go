package controller

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/repository"
	"github.com/PriyanshVijay26/quiz-master/internal/service"
	"github.com/PriyanshVijay26/quiz-master/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// RecordingURLRequest 外部托管的录屏地址
type RecordingURLRequest struct {
	RecordingURL string `json:"recording_url"`
}

type FlagRequest struct {
	Flagged *bool `json:"flagged" binding:"required"`
}

// QuizAccess godoc
// @Summary 测验访问状态
// @Description 未作答时可开始，已作答时只能查看结果
// @Tags 作答
// @Produce  json
// @Security ApiKeyAuth
// @Param   quizId path int true "测验ID"
// @Success 200 {object} util.Response{data=service.QuizAccess}
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/user/quizzes/{quizId}/access [get]
func (c *AttemptController) QuizAccess(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	quizID, ok := pathID(ctx, "quizId", util.ErrQuizNotFound)
	if !ok {
		return
	}

	access, err := c.AttemptService.Access(claims.UserID, quizID)
	if err != nil {
		util.HandleError(ctx, "Failed to check quiz access", err)
		return
	}
	util.Success(ctx, access)
}

// SubmitScore godoc
// @Summary 提交作答成绩
// @Description 每个用户每个测验只能提交一次，total_scored 为 0 也是合法提交
// @Tags 作答
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.SubmitScoreInput true "成绩"
// @Success 201 {object} util.Response{data=model.Score}
// @Failure 400 {object} util.Response "缺少参数"
// @Failure 404 {object} util.Response "测验不存在"
// @Failure 409 {object} util.Response "已作答"
// @Router /api/scores [post]
func (c *AttemptController) SubmitScore(ctx *gin.Context) {
	claims, ok := requireRole(ctx, model.RoleUser)
	if !ok {
		return
	}

	var req service.SubmitScoreInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	score, err := c.AttemptService.Submit(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, "Failed to submit score", err)
		return
	}
	util.Created(ctx, "Score submitted successfully", score)
}

// UploadRecording godoc
// @Summary 上传作答录屏
// @Description multipart 字段 recording 可重复；也可提交 JSON {recording_url}
// @Tags 作答
// @Accept  mpfd,json
// @Produce  json
// @Security ApiKeyAuth
// @Param   quizId path int true "测验ID"
// @Param   recording formData file false "录屏文件"
// @Success 200 {object} util.Response{data=model.Score}
// @Failure 400 {object} util.Response "没有可用的录屏"
// @Failure 404 {object} util.Response "尚未作答"
// @Router /api/user/quizzes/{quizId}/recording [post]
func (c *AttemptController) UploadRecording(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	quizID, ok := pathID(ctx, "quizId", util.ErrQuizNotFound)
	if !ok {
		return
	}

	var urls []string
	var files []*multipart.FileHeader
	if ctx.ContentType() == gin.MIMEMultipartPOSTForm {
		form, err := ctx.MultipartForm()
		if err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
		files = form.File["recording"]
		urls = form.Value["recording_url"]
	} else {
		var req RecordingURLRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
		urls = []string{req.RecordingURL}
	}

	score, err := c.AttemptService.AttachRecordings(ctx.Request.Context(), claims.UserID, quizID, files, urls)
	if err != nil {
		util.HandleError(ctx, "Failed to upload recording", err)
		return
	}
	util.Message(ctx, http.StatusOK, "Recording uploaded successfully", score)
}

// QuizResult godoc
// @Summary 查看作答结果
// @Tags 作答
// @Produce  json
// @Security ApiKeyAuth
// @Param   quizId path int true "测验ID"
// @Success 200 {object} util.Response{data=model.Score}
// @Failure 404 {object} util.Response "尚未作答"
// @Router /api/user/quizzes/{quizId}/result [get]
func (c *AttemptController) QuizResult(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	quizID, ok := pathID(ctx, "quizId", util.ErrQuizNotFound)
	if !ok {
		return
	}

	score, err := c.AttemptService.Result(claims.UserID, quizID)
	if err != nil {
		util.HandleError(ctx, "Failed to fetch result", err)
		return
	}
	util.Success(ctx, score)
}

// MyScores godoc
// @Summary 我的作答记录
// @Tags 作答
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Score}
// @Router /api/user/scores [get]
func (c *AttemptController) MyScores(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	scores, err := c.AttemptService.ListMine(claims.UserID)
	if err != nil {
		util.HandleError(ctx, "Failed to fetch scores", err)
		return
	}
	util.Success(ctx, scores)
}

// ListScores godoc
// @Summary 作答记录列表（管理端）
// @Tags 作答审核
// @Produce  json
// @Security ApiKeyAuth
// @Param   quiz_id query int false "测验ID"
// @Param   user_id query int false "用户ID"
// @Param   flagged query bool false "是否已标记"
// @Success 200 {object} util.Response{data=[]model.Score}
// @Router /api/scores [get]
func (c *AttemptController) ListScores(ctx *gin.Context) {
	var filter repository.ScoreFilter
	if v, err := strconv.ParseUint(ctx.Query("quiz_id"), 10, 64); err == nil {
		filter.QuizID = uint(v)
	}
	if v, err := strconv.ParseUint(ctx.Query("user_id"), 10, 64); err == nil {
		filter.UserID = uint(v)
	}
	if v, err := strconv.ParseBool(ctx.Query("flagged")); err == nil {
		filter.Flagged = &v
	}

	scores, err := c.AttemptService.ListAll(filter)
	if err != nil {
		util.HandleError(ctx, "Failed to fetch scores", err)
		return
	}
	util.Success(ctx, scores)
}

// GetScore godoc
// @Summary 作答记录详情（管理端）
// @Tags 作答审核
// @Produce  json
// @Security ApiKeyAuth
// @Param   scoreId path int true "记录ID"
// @Success 200 {object} util.Response{data=model.Score}
// @Failure 404 {object} util.Response "记录不存在"
// @Router /api/scores/{scoreId} [get]
func (c *AttemptController) GetScore(ctx *gin.Context) {
	id, ok := pathID(ctx, "scoreId", util.ErrScoreNotFound)
	if !ok {
		return
	}

	score, err := c.AttemptService.Get(id)
	if err != nil {
		util.HandleError(ctx, "Failed to fetch score", err)
		return
	}
	util.Success(ctx, score)
}

// FlagScore godoc
// @Summary 标记作答记录
// @Tags 作答审核
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   scoreId path int true "记录ID"
// @Param   body body FlagRequest true "标记状态"
// @Success 200 {object} util.Response{data=model.Score}
// @Failure 404 {object} util.Response "记录不存在"
// @Router /api/scores/{scoreId}/flag [put]
func (c *AttemptController) FlagScore(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}
	id, ok := pathID(ctx, "scoreId", util.ErrScoreNotFound)
	if !ok {
		return
	}

	var req FlagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	score, err := c.AttemptService.Flag(ctx.Request.Context(), id, *req.Flagged)
	if err != nil {
		util.HandleError(ctx, "Failed to flag score", err)
		return
	}
	util.Message(ctx, http.StatusOK, "Score flag updated", score)
}
