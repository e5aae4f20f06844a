package controller

import (
	"strconv"

	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/util"

	"github.com/gin-gonic/gin"
)

// pathID 解析路径中的数字 ID，非法时按资源不存在处理
func pathID(ctx *gin.Context, name string, notFound error) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		util.HandleError(ctx, "", notFound)
		return 0, false
	}
	return uint(id), true
}

// requireRole 处理函数内的角色复核，与路由上的 RoleMiddleware 同时生效
func requireRole(ctx *gin.Context, role model.RoleName) (*util.Claims, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return nil, false
	}
	if !claims.HasRole(role) {
		util.HandleError(ctx, "", util.ErrPermissionDenied)
		return nil, false
	}
	return claims, true
}

func currentUser(ctx *gin.Context) (*util.Claims, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return nil, false
	}
	return claims, true
}
