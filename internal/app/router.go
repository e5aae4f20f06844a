package app

import (
	"github.com/PriyanshVijay26/quiz-master/docs"
	"github.com/PriyanshVijay26/quiz-master/internal/middleware"
	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/util"
	"github.com/PriyanshVijay26/quiz-master/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.NoRoute(util.NotFound)

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(a.services.auth), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.POST("/logout", c.auth.Logout)
		authGroup.GET("/profile", c.auth.GetProfile)

		// 站内消息
		authGroup.POST("/messages", c.chat.SendMessage)
		authGroup.GET("/messages", c.chat.ListMessages)
		authGroup.GET("/messages/ws", c.chat.HandleWS)

		// 管理员相关接口
		a.registerAdminRoutes(authGroup, c)

		// 普通用户接口
		a.registerUserRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := middleware.RoleMiddleware(model.RoleAdmin)

	rg.GET("/users", admin, c.auth.ListUsers)

	// 科目
	rg.GET("/subjects", admin, c.subject.ListSubjects)
	rg.POST("/subjects", admin, c.subject.CreateSubject)
	rg.GET("/subjects/:subjectId", admin, c.subject.GetSubject)
	rg.PUT("/subjects/:subjectId", admin, c.subject.UpdateSubject)
	rg.DELETE("/subjects/:subjectId", admin, c.subject.DeleteSubject)

	// 章节
	chapters := "/subjects/:subjectId/chapters"
	rg.GET(chapters, admin, c.chapter.ListChapters)
	rg.POST(chapters, admin, c.chapter.CreateChapter)
	rg.GET(chapters+"/:chapterId", admin, c.chapter.GetChapter)
	rg.PUT(chapters+"/:chapterId", admin, c.chapter.UpdateChapter)
	rg.DELETE(chapters+"/:chapterId", admin, c.chapter.DeleteChapter)

	// 测验
	quizzes := chapters + "/:chapterId/quizzes"
	rg.GET(quizzes, admin, c.quiz.ListQuizzes)
	rg.POST(quizzes, admin, c.quiz.CreateQuiz)
	rg.GET(quizzes+"/:quizId", admin, c.quiz.GetQuiz)
	rg.PUT(quizzes+"/:quizId", admin, c.quiz.UpdateQuiz)
	rg.DELETE(quizzes+"/:quizId", admin, c.quiz.DeleteQuiz)

	// 题目：读取只需登录
	questions := quizzes + "/:quizId/questions"
	rg.GET(questions, c.question.ListQuestions)
	rg.POST(questions, admin, c.question.CreateQuestion)
	rg.GET(questions+"/:questionId", c.question.GetQuestion)
	rg.PUT(questions+"/:questionId", admin, c.question.UpdateQuestion)
	rg.DELETE(questions+"/:questionId", admin, c.question.DeleteQuestion)

	// 作答审核
	rg.GET("/scores", admin, c.attempt.ListScores)
	rg.GET("/scores/:scoreId", admin, c.attempt.GetScore)
	rg.PUT("/scores/:scoreId/flag", admin, c.attempt.FlagScore)
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	user := middleware.RoleMiddleware(model.RoleUser)

	rg.POST("/scores", user, c.attempt.SubmitScore)

	u := rg.Group("/user", user)
	{
		u.GET("/subjects", c.subject.UserListSubjects)
		u.GET("/subjects/:subjectId", c.subject.GetSubject)
		u.GET("/subjects/:subjectId/chapters", c.chapter.UserListChapters)
		u.GET("/subjects/:subjectId/chapters/:chapterId", c.chapter.GetChapter)
		u.GET("/subjects/:subjectId/chapters/:chapterId/quizzes", c.quiz.UserListQuizzes)
		u.GET("/subjects/:subjectId/chapters/:chapterId/quizzes/:quizId", c.quiz.GetQuiz)
		u.GET("/subjects/:subjectId/chapters/:chapterId/quizzes/:quizId/questions", c.question.UserListQuestions)
		u.GET("/subjects/:subjectId/chapters/:chapterId/quizzes/:quizId/questions/:questionId", c.question.GetQuestion)

		u.GET("/quizzes/:quizId/access", c.attempt.QuizAccess)
		u.POST("/quizzes/:quizId/recording", c.attempt.UploadRecording)
		u.GET("/quizzes/:quizId/result", c.attempt.QuizResult)
		u.GET("/scores", c.attempt.MyScores)
	}
}
