package router

import (
	"github.com/RigelNana/arktube/handler"
	"github.com/RigelNana/arktube/middleware"
	"github.com/RigelNana/arktube/pkg/metrics"
	ginmetrics "github.com/RigelNana/arktube/pkg/metrics/gin"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handlers 路由依赖的全部处理器
type Handlers struct {
	Health       *handler.HealthHandler
	Category     *handler.CategoryHandler
	Video        *handler.VideoHandler
	Comment      *handler.CommentHandler
	Subscription *handler.SubscriptionHandler
	User         *handler.UserHandler
	Studio       *handler.StudioHandler
	Webhook      *handler.WebhookHandler
}

func Setup(h Handlers, authn *middleware.Authenticator, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginmetrics.PrometheusMiddleware(metrics.ServiceName))
	r.Use(middleware.RequestLogger(logger))

	r.GET("/health", h.Health.Health)

	optional := authn.OptionalAuth()
	required := authn.RequireAuth()

	api := r.Group("/api")
	{
		api.GET("/categories", h.Category.List)
		api.GET("/search", optional, h.Video.Search)
		api.GET("/users/:id", optional, h.User.GetOne)

		// 回调只依赖签名校验，不走会话鉴权
		api.POST("/videos/webhook", h.Webhook.Receive)
	}

	videos := api.Group("/videos")
	{
		videos.GET("", optional, h.Video.GetMany)
		videos.GET("/trending", optional, h.Video.GetTrending)
		videos.GET("/subscribed", required, h.Video.GetSubscribed)
		videos.GET("/:id", optional, h.Video.GetOne)
		videos.POST("/:id/views", required, h.Video.RecordView)
		videos.POST("/:id/reactions", required, h.Video.React)
		videos.GET("/:id/comments", optional, h.Comment.List)
		videos.POST("/:id/comments", required, h.Comment.Create)
	}

	comments := api.Group("/comments", required)
	{
		comments.DELETE("/:id", h.Comment.Remove)
		comments.POST("/:id/reactions", h.Comment.React)
	}

	subscriptions := api.Group("/subscriptions", required)
	{
		subscriptions.GET("", h.Subscription.List)
		subscriptions.POST("", h.Subscription.Create)
		subscriptions.DELETE("/:creatorId", h.Subscription.Remove)
	}

	studio := api.Group("/studio/videos", required)
	{
		studio.GET("", h.Studio.List)
		studio.POST("", h.Studio.Create)
		studio.GET("/:id", h.Studio.Get)
		studio.PATCH("/:id", h.Studio.Update)
		studio.DELETE("/:id", h.Studio.Remove)
		studio.POST("/:id/revalidate", h.Studio.Revalidate)
		studio.POST("/:id/thumbnail/restore", h.Studio.RestoreThumbnail)
		studio.POST("/:id/generate/:kind", h.Studio.Generate)
	}

	return r
}
