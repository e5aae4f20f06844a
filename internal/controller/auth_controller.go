package controller

import (
	"errors"
	"net/http"

	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/service"
	"github.com/PriyanshVijay26/quiz-master/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register godoc
// @Summary 注册新用户
// @Description 注册普通用户（角色 user），出生日期格式 YYYY-MM-DD
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.RegisterInput true "用户注册信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			util.HandleError(ctx, "Failed to register user", util.ErrInvalidDOB)
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Register(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, "Failed to register user", err)
		return
	}

	util.Created(ctx, "User registered successfully", gin.H{"id": user.ID})
}

// Login godoc
// @Summary 用户登录
// @Description 验证用户身份并返回令牌与角色
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "用户登录凭据"
// @Success 200 {object} util.Response{data=service.LoginResult} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		util.HandleError(ctx, "Failed to login", err)
		return
	}

	util.Message(ctx, http.StatusOK, "Login successful", result)
}

// Logout godoc
// @Summary 退出登录
// @Description 使当前用户已签发的全部令牌失效
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response "未授权"
// @Router /api/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	if err := c.AuthService.Logout(claims.UserID); err != nil {
		util.HandleError(ctx, "Failed to logout", err)
		return
	}
	util.Message(ctx, http.StatusOK, "Logout successful", nil)
}

// GetProfile godoc
// @Summary 获取当前用户资料
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User} "Success"
// @Failure 401 {object} util.Response "Unauthorized"
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	user, err := c.AuthService.Profile(claims.UserID)
	if err != nil {
		util.HandleError(ctx, "Failed to load profile", err)
		return
	}
	util.Success(ctx, user)
}

// ListUsers godoc
// @Summary 用户列表
// @Description 管理员查看全部用户及角色
// @Tags 用户管理
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Failure 403 {object} util.Response "无权限"
// @Router /api/users [get]
func (c *AuthController) ListUsers(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}

	users, err := c.AuthService.ListUsers()
	if err != nil {
		util.HandleError(ctx, "Failed to list users", err)
		return
	}
	util.Success(ctx, users)
}
