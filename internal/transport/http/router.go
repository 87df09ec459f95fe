package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/dietcoach/backend/internal/models"
	"github.com/dietcoach/backend/internal/service"
	"github.com/dietcoach/backend/pkg/logging"
)

type Deps struct {
	DB       *gorm.DB
	Auth     *service.AuthService
	Users    *service.UserService
	Diet     *service.DietService
	Chat     *service.ChatService
	Exercise *service.ExerciseService
	Catalog  *service.CatalogService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", ready(d.DB))

	authHandler := &AuthHandler{Svc: d.Auth}
	dietHandler := &DietHandler{Svc: d.Diet}
	chatHandler := &ChatHandler{Svc: d.Chat}
	userHandler := &UserHandler{Svc: d.Users}
	exerciseHandler := &ExerciseHandler{Svc: d.Exercise}
	catalogHandler := &CatalogHandler{Svc: d.Catalog}

	requireAuth := RequireAuth(d.Auth)
	adminOnly := RequireRole(models.RoleAdmin)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, requireAuth)
	auth.GET("/profile", authHandler.GetProfile, requireAuth)
	auth.PUT("/profile", authHandler.UpdateProfile, requireAuth)
	auth.POST("/change-password", authHandler.ChangePassword, requireAuth)
	auth.GET("/verify", authHandler.Verify, requireAuth)

	diet := api.Group("/diet", requireAuth)
	diet.POST("/generate", dietHandler.Generate)
	diet.GET("", dietHandler.List)
	diet.GET("/", dietHandler.List)
	diet.GET("/latest", dietHandler.Latest)
	diet.GET("/statistics", dietHandler.Statistics)
	diet.GET("/:id", dietHandler.Get)
	diet.PUT("/:id", dietHandler.Update)
	diet.DELETE("/:id", dietHandler.Delete)

	chat := api.Group("/chatbot", requireAuth)
	chat.POST("/query", chatHandler.Query)
	chat.POST("/quick-ask", chatHandler.QuickAsk)
	chat.GET("/history", chatHandler.History)
	chat.DELETE("/history", chatHandler.ClearHistory)
	chat.GET("/statistics", chatHandler.Statistics)
	chat.GET("/:id", chatHandler.Get)
	chat.DELETE("/:id", chatHandler.Delete)

	exercise := api.Group("/exercise", requireAuth)
	exercise.POST("/generate", exerciseHandler.Generate)
	exercise.GET("", exerciseHandler.List)
	exercise.GET("/", exerciseHandler.List)
	exercise.GET("/:id", exerciseHandler.Get)
	exercise.PUT("/:id", exerciseHandler.Update)
	exercise.DELETE("/:id", exerciseHandler.Delete)

	// catalog reads are public
	workouts := api.Group("/workouts")
	workouts.GET("", catalogHandler.ListWorkouts)
	workouts.GET("/", catalogHandler.ListWorkouts)
	workouts.GET("/:id", catalogHandler.GetWorkout)
	workouts.POST("", catalogHandler.CreateWorkout, requireAuth, adminOnly)
	workouts.POST("/", catalogHandler.CreateWorkout, requireAuth, adminOnly)
	workouts.PUT("/:id", catalogHandler.UpdateWorkout, requireAuth, adminOnly)
	workouts.DELETE("/:id", catalogHandler.DeleteWorkout, requireAuth, adminOnly)

	yoga := api.Group("/yoga")
	yoga.GET("", catalogHandler.ListYoga)
	yoga.GET("/", catalogHandler.ListYoga)
	yoga.GET("/difficulty/:level", catalogHandler.YogaByDifficulty)
	yoga.GET("/:id", catalogHandler.GetYoga)
	yoga.POST("", catalogHandler.CreateYoga, requireAuth, adminOnly)
	yoga.POST("/", catalogHandler.CreateYoga, requireAuth, adminOnly)
	yoga.PUT("/:id", catalogHandler.UpdateYoga, requireAuth, adminOnly)
	yoga.DELETE("/:id", catalogHandler.DeleteYoga, requireAuth, adminOnly)

	users := api.Group("/users", requireAuth)
	users.GET("", userHandler.List, adminOnly)
	users.GET("/", userHandler.List, adminOnly)
	users.GET("/search", userHandler.Search, adminOnly)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete, adminOnly)
	users.GET("/:id/stats", userHandler.Stats)
}

func ready(db *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			logging.FromContext(ctx).Warn("readiness_failed", "status", http.StatusServiceUnavailable, "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	}
}
