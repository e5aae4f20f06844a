package controller

import (
	"net/http"

	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/service"
	"github.com/PriyanshVijay26/quiz-master/internal/util"

	"github.com/gin-gonic/gin"
)

type SubjectController struct {
	SubjectService *service.SubjectService
}

func NewSubjectController(subjectService *service.SubjectService) *SubjectController {
	return &SubjectController{SubjectService: subjectService}
}

// ListSubjects godoc
// @Summary 科目列表
// @Tags 题库管理
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Subject}
// @Router /api/subjects [get]
func (c *SubjectController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.SubjectService.List()
	if err != nil {
		util.HandleError(ctx, "Failed to fetch subjects", err)
		return
	}
	util.Success(ctx, subjects)
}

// GetSubject godoc
// @Summary 科目详情
// @Tags 题库管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Success 200 {object} util.Response{data=model.Subject}
// @Failure 404 {object} util.Response "科目不存在"
// @Router /api/subjects/{subjectId} [get]
func (c *SubjectController) GetSubject(ctx *gin.Context) {
	id, ok := pathID(ctx, "subjectId", util.ErrSubjectNotFound)
	if !ok {
		return
	}

	subject, err := c.SubjectService.Get(id)
	if err != nil {
		util.HandleError(ctx, "Failed to fetch subject", err)
		return
	}
	util.Success(ctx, subject)
}

// CreateSubject godoc
// @Summary 创建科目
// @Tags 题库管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.SubjectInput true "科目信息"
// @Success 201 {object} util.Response{data=model.Subject}
// @Failure 400 {object} util.Response "名称为空"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/subjects [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}

	var req service.SubjectInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.SubjectService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, "Failed to create subject", err)
		return
	}
	util.Created(ctx, "Subject created successfully", subject)
}

// UpdateSubject godoc
// @Summary 更新科目
// @Tags 题库管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Param   body body service.SubjectInput true "需要修改的字段"
// @Success 200 {object} util.Response{data=model.Subject}
// @Failure 404 {object} util.Response "科目不存在"
// @Router /api/subjects/{subjectId} [put]
func (c *SubjectController) UpdateSubject(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}
	id, ok := pathID(ctx, "subjectId", util.ErrSubjectNotFound)
	if !ok {
		return
	}

	var req service.SubjectInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.SubjectService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, "Failed to update subject", err)
		return
	}
	util.Message(ctx, http.StatusOK, "Subject updated successfully", subject)
}

// DeleteSubject godoc
// @Summary 删除科目
// @Tags 题库管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "科目ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "科目不存在"
// @Router /api/subjects/{subjectId} [delete]
func (c *SubjectController) DeleteSubject(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}
	id, ok := pathID(ctx, "subjectId", util.ErrSubjectNotFound)
	if !ok {
		return
	}

	if err := c.SubjectService.Delete(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, "Failed to delete subject", err)
		return
	}
	util.Message(ctx, http.StatusOK, "Subject deleted successfully", nil)
}

// UserListSubjects godoc
// @Summary 科目列表（用户端）
// @Tags 用户题库
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Subject}
// @Router /api/user/subjects [get]
func (c *SubjectController) UserListSubjects(ctx *gin.Context) {
	subjects, err := c.SubjectService.ListCached(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, "Failed to fetch subjects", err)
		return
	}
	util.Success(ctx, subjects)
}
