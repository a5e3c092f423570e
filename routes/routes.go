package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/appdotbuilder/food-catalog/config"
	"github.com/appdotbuilder/food-catalog/controllers"
	"github.com/appdotbuilder/food-catalog/middlewares"
	"github.com/appdotbuilder/food-catalog/services"
)

type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *slog.Logger
	// Registry defaults to a fresh registry with Go and process collectors.
	Registry *prometheus.Registry
}

func SetupRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
		d.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	metrics := middlewares.NewMetrics(d.Registry)

	r := gin.New()
	r.Use(middlewares.RequestLogger(d.Log), gin.Recovery(), metrics.Handler())

	catalogSvc := services.NewCatalogService(d.DB, d.Log)
	categorySvc := services.NewCategoryService(d.DB, d.Log)
	foodItemSvc := services.NewFoodItemService(d.DB, d.Log)
	authSvc := services.NewAuthService(d.DB, d.Config.JWTSecret, d.Config.JWTTTL, d.Log)
	validator := services.NewCatalogValidator(d.DB)

	catalog := controllers.NewCatalogController(catalogSvc, metrics)
	categories := controllers.NewCategoryController(categorySvc, validator)
	foodItems := controllers.NewFoodItemController(foodItemSvc, categorySvc, validator)
	auth := controllers.NewAuthController(authSvc)
	userSvc := services.NewUserService(d.DB)
	users := controllers.NewUserController(userSvc)

	// Public
	r.GET("/", catalog.Index)
	r.GET("/api/catalog", catalog.Index)
	r.GET("/food/:slug", catalog.Show)
	r.GET("/health-check", controllers.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	r.POST("/auth/login", middlewares.RateLimit(rate.Every(6*time.Second), 5), auth.Login)

	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(d.Config.JWTSecret, userSvc))
	{
		admin.GET("/me", users.Me)

		admin.GET("/categories", categories.Index)
		admin.GET("/categories/create", categories.Create)
		admin.POST("/categories", categories.Store)
		admin.GET("/categories/:id", categories.Show)
		admin.GET("/categories/:id/edit", categories.Edit)
		admin.PUT("/categories/:id", categories.Update)
		admin.PATCH("/categories/:id", categories.Update)
		admin.DELETE("/categories/:id", categories.Destroy)

		admin.GET("/food-items", foodItems.Index)
		admin.GET("/food-items/create", foodItems.Create)
		admin.POST("/food-items", foodItems.Store)
		admin.GET("/food-items/:id", foodItems.Show)
		admin.GET("/food-items/:id/edit", foodItems.Edit)
		admin.PUT("/food-items/:id", foodItems.Update)
		admin.PATCH("/food-items/:id", foodItems.Update)
		admin.DELETE("/food-items/:id", foodItems.Destroy)
	}

	return r
}
