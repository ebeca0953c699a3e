package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/access"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/handler"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/metrics"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/middleware"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/realtime"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/repository"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/service"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/settings"
)

// Config holds everything Setup needs to assemble the service.
// Redis may be nil; the settings cache then falls through to the database.
type Config struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	JWTSecret      string
	BasePath       string
	Metrics        *metrics.Metrics
	CacheTTL       time.Duration
	AllowedOrigins []string
	SendBufferSize int
	HubQueueSize   int
}

// Setup wires repositories, services, the realtime gateway and all HTTP
// routes into a ready-to-serve gin engine. The hub goroutine it starts
// lives for the remainder of the process.
func Setup(cfg Config) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Repositories
	boardRepo := repository.NewBoardRepository(cfg.DB)
	listRepo := repository.NewListRepository(cfg.DB)
	cardRepo := repository.NewCardRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)
	activityRepo := repository.NewActivityRepository(cfg.DB)
	settingRepo := repository.NewSettingRepository(cfg.DB)

	// Settings and access control
	settingsService := settings.NewService(settingRepo, cfg.Redis, cfg.CacheTTL, recorderOrNil(cfg.Metrics), logger)
	resolver := access.NewResolver(boardRepo, settingsService)

	// Realtime gateway
	hub := realtime.NewHub(cfg.HubQueueSize, hubRecorderOrNil(cfg.Metrics), logger)
	go hub.Run(context.Background())
	tracker := realtime.NewTracker()
	gateway := realtime.NewGateway(hub, tracker, resolver, settingsService, cfg.JWTSecret, cfg.SendBufferSize, hubRecorderOrNil(cfg.Metrics), logger)

	// Services
	activityService := service.NewActivityService(activityRepo, resolver, gateway, logger)
	boardService := service.NewBoardService(boardRepo, listRepo, cardRepo, resolver, gateway, activityService, cfg.Metrics, logger)
	listService := service.NewListService(listRepo, cardRepo, resolver, gateway, activityService, logger)
	cardService := service.NewCardService(cardRepo, listRepo, resolver, gateway, activityService, cfg.Metrics, logger)
	commentService := service.NewCommentService(commentRepo, cardRepo, resolver, gateway, activityService, logger)

	// Handlers
	boardHandler := handler.NewBoardHandler(boardService)
	listHandler := handler.NewListHandler(listService)
	cardHandler := handler.NewCardHandler(cardService)
	commentHandler := handler.NewCommentHandler(commentService)
	activityHandler := handler.NewActivityHandler(activityService)
	settingHandler := handler.NewSettingHandler(settingsService)
	wsHandler := handler.NewWSHandler(gateway, logger)

	// Health and metrics stay outside auth so probes and scrapers work
	r.GET("/health", healthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(cfg.BasePath)
	{
		// Base-path aliases only when they don't collide with the root routes
		if cfg.BasePath != "" && cfg.BasePath != "/" {
			api.GET("/health", healthCheck)
			api.GET("/metrics", gin.WrapH(promhttp.Handler()))
		}
		api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		// The websocket gateway authenticates in-band on its first frame
		api.GET("/ws", wsHandler.Serve)

		authorized := api.Group("")
		authorized.Use(middleware.Auth(cfg.JWTSecret))
		{
			boards := authorized.Group("/boards")
			{
				boards.POST("", boardHandler.CreateBoard)
				boards.GET("", boardHandler.GetBoards)
				boards.GET("/:boardId", boardHandler.GetBoard)
				boards.PUT("/:boardId", boardHandler.UpdateBoard)
				boards.DELETE("/:boardId", boardHandler.DeleteBoard)
				boards.POST("/:boardId/members", boardHandler.AddMember)
				boards.DELETE("/:boardId/members/:userId", boardHandler.RemoveMember)
				boards.GET("/:boardId/activities", activityHandler.GetActivities)
				boards.POST("/:boardId/lists", listHandler.CreateList)
				boards.GET("/:boardId/lists", listHandler.GetLists)
			}

			lists := authorized.Group("/lists")
			{
				lists.PUT("/:listId", listHandler.UpdateList)
				lists.DELETE("/:listId", listHandler.DeleteList)
				lists.POST("/:listId/cards", cardHandler.CreateCard)
				lists.GET("/:listId/cards", cardHandler.GetCards)
			}

			cards := authorized.Group("/cards")
			{
				cards.PUT("/:cardId", cardHandler.UpdateCard)
				cards.DELETE("/:cardId", cardHandler.DeleteCard)
				cards.POST("/:cardId/move", cardHandler.MoveCard)
				cards.POST("/:cardId/comments", commentHandler.CreateComment)
				cards.GET("/:cardId/comments", commentHandler.GetComments)
			}

			comments := authorized.Group("/comments")
			{
				comments.PUT("/:commentId", commentHandler.UpdateComment)
				comments.DELETE("/:commentId", commentHandler.DeleteComment)
			}

			admin := authorized.Group("/admin")
			{
				admin.GET("/settings/:key", settingHandler.GetSetting)
				admin.PUT("/settings/:key", settingHandler.UpdateSetting)
			}
		}
	}

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// recorderOrNil keeps the typed-nil interface pitfall out of the settings
// service: a nil *Metrics must arrive as a nil interface.
func recorderOrNil(m *metrics.Metrics) settings.CacheRecorder {
	if m == nil {
		return nil
	}
	return m
}

func hubRecorderOrNil(m *metrics.Metrics) realtime.Recorder {
	if m == nil {
		return nil
	}
	return m
}
