package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/storefront/internal/handler"
	"github.com/storefront/internal/metrics"
)

const sessionName = "storefront_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string, reg *metrics.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger())

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if reg != nil {
		r.GET("/metrics", gin.WrapH(reg.Handler()))
	}

	public := r.Group("/api")
	{
		public.GET("/products", api.SearchProducts)
		public.GET("/about", api.GetAboutContent)
		public.GET("/contact", api.GetContactInfo)
	}

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.POST("/login", api.Login)
		admin.POST("/logout", api.Logout)

		auth := admin.Group("/api")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/flashes", api.Flashes)
			auth.PUT("/about", api.UpdateAboutContent)
			auth.PUT("/contact", api.UpdateContactInfo)
		}
	}

	return r
}
