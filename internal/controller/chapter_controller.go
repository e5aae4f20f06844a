package controller

import (
	"net/http"

	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/service"
	"github.com/PriyanshVijay26/quiz-master/internal/util"

	"github.com/gin-gonic/gin"
)

type ChapterController struct {
	ChapterService *service.ChapterService
}

func NewChapterController(chapterService *service.ChapterService) *ChapterController {
	return &ChapterController{ChapterService: chapterService}
}

// ListChapters godoc
// @Summary 章节列表
// @Tags 题库管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Success 200 {object} util.Response{data=[]model.Chapter}
// @Failure 404 {object} util.Response "科目不存在"
// @Router /api/subjects/{subjectId}/chapters [get]
func (c *ChapterController) ListChapters(ctx *gin.Context) {
	subjectID, ok := pathID(ctx, "subjectId", util.ErrSubjectNotFound)
	if !ok {
		return
	}

	chapters, err := c.ChapterService.List(subjectID)
	if err != nil {
		util.HandleError(ctx, "Failed to fetch chapters", err)
		return
	}
	util.Success(ctx, chapters)
}

// GetChapter godoc
// @Summary 章节详情
// @Tags 题库管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Param   chapterId path int true "章节ID"
// @Success 200 {object} util.Response{data=model.Chapter}
// @Failure 404 {object} util.Response "章节不存在"
// @Router /api/subjects/{subjectId}/chapters/{chapterId} [get]
func (c *ChapterController) GetChapter(ctx *gin.Context) {
	subjectID, ok := pathID(ctx, "subjectId", util.ErrSubjectNotFound)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "chapterId", util.ErrChapterNotFound)
	if !ok {
		return
	}

	chapter, err := c.ChapterService.Get(subjectID, id)
	if err != nil {
		util.HandleError(ctx, "Failed to fetch chapter", err)
		return
	}
	util.Success(ctx, chapter)
}

// CreateChapter godoc
// @Summary 创建章节
// @Tags 题库管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Param   body body service.ChapterInput true "章节信息"
// @Success 201 {object} util.Response{data=model.Chapter}
// @Failure 400 {object} util.Response "名称为空"
// @Failure 404 {object} util.Response "科目不存在"
// @Router /api/subjects/{subjectId}/chapters [post]
func (c *ChapterController) CreateChapter(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}
	subjectID, ok := pathID(ctx, "subjectId", util.ErrSubjectNotFound)
	if !ok {
		return
	}

	var req service.ChapterInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.ChapterService.Create(ctx.Request.Context(), subjectID, req)
	if err != nil {
		util.HandleError(ctx, "Failed to create chapter", err)
		return
	}
	util.Created(ctx, "Chapter created successfully", chapter)
}

// UpdateChapter godoc
// @Summary 更新章节
// @Description 只更新请求中出现的字段，subject_id 可把章节移到其他科目
// @Tags 题库管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Param   chapterId path int true "章节ID"
// @Param   body body service.ChapterInput true "需要修改的字段"
// @Success 200 {object} util.Response{data=model.Chapter}
// @Failure 404 {object} util.Response "章节不存在"
// @Router /api/subjects/{subjectId}/chapters/{chapterId} [put]
func (c *ChapterController) UpdateChapter(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}
	subjectID, ok := pathID(ctx, "subjectId", util.ErrSubjectNotFound)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "chapterId", util.ErrChapterNotFound)
	if !ok {
		return
	}

	var req service.ChapterInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.ChapterService.Update(ctx.Request.Context(), subjectID, id, req)
	if err != nil {
		util.HandleError(ctx, "Failed to update chapter", err)
		return
	}
	util.Message(ctx, http.StatusOK, "Chapter updated successfully", chapter)
}

// DeleteChapter godoc
// @Summary 删除章节
// @Tags 题库管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Param   chapterId path int true "章节ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "章节不存在"
// @Router /api/subjects/{subjectId}/chapters/{chapterId} [delete]
func (c *ChapterController) DeleteChapter(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}
	subjectID, ok := pathID(ctx, "subjectId", util.ErrSubjectNotFound)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "chapterId", util.ErrChapterNotFound)
	if !ok {
		return
	}

	if err := c.ChapterService.Delete(ctx.Request.Context(), subjectID, id); err != nil {
		util.HandleError(ctx, "Failed to delete chapter", err)
		return
	}
	util.Message(ctx, http.StatusOK, "Chapter deleted successfully", nil)
}

// UserListChapters godoc
// @Summary 章节列表（用户端）
// @Tags 用户题库
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Success 200 {object} util.Response{data=[]model.Chapter}
// @Router /api/user/subjects/{subjectId}/chapters [get]
func (c *ChapterController) UserListChapters(ctx *gin.Context) {
	subjectID, ok := pathID(ctx, "subjectId", util.ErrSubjectNotFound)
	if !ok {
		return
	}

	chapters, err := c.ChapterService.ListCached(ctx.Request.Context(), subjectID)
	if err != nil {
		util.HandleError(ctx, "Failed to fetch chapters", err)
		return
	}
	util.Success(ctx, chapters)
}
