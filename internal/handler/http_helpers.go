package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/storefront/internal/notify"
	"github.com/storefront/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// requestContext 返回挂载了提示收集器的请求 ctx。
func requestContext(c *gin.Context) (context.Context, *notify.Collector) {
	return notify.WithCollector(c.Request.Context())
}

// flashMessages 把本次请求收集到的提示写入会话，供后续页面读取。
func flashMessages(c *gin.Context, messages []notify.Message) {
	if len(messages) == 0 {
		return
	}
	session := sessions.Default(c)
	for _, msg := range messages {
		session.AddFlash(msg.Text, string(msg.Level))
	}
	if err := session.Save(); err != nil {
		log.Warn().Err(err).Msg("save flash messages failed")
	}
}

func handleContentError(c *gin.Context, err error, messages []notify.Message, fallback string) {
	switch {
	case errors.Is(err, service.ErrActorRequired):
		respondError(c, http.StatusUnauthorized, "请先登录")
	case errors.Is(err, service.ErrRecordRequired):
		respondError(c, http.StatusConflict, "尚未创建内容记录，无法更新")
	case errors.Is(err, service.ErrPrecondition):
		respondError(c, http.StatusBadRequest, "请检查提交的字段")
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":         fallback,
			"notifications": messages,
		})
	}
}
