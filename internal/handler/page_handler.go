package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/storefront/internal/store"
)

// GetAboutContent returns the cached active about record.
// Pass refresh=1 to reload it from the store first.
func (a *API) GetAboutContent(c *gin.Context) {
	ctx := c.Request.Context()
	a.about.Attach(context.WithoutCancel(ctx))
	if c.Query("refresh") != "" {
		a.about.Load(ctx)
	}

	record, ok := a.about.Record()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"about": nil, "storyHtml": "", "loading": a.about.Loading()})
		return
	}

	storyHTML, err := a.about.StoryHTML()
	if err != nil {
		log.Warn().Err(err).Msg("render company story failed")
	}

	c.JSON(http.StatusOK, gin.H{
		"about":     record,
		"storyHtml": storyHTML,
		"loading":   a.about.Loading(),
	})
}

// UpdateAboutContent applies a partial update to the about record,
// creating it when none exists yet.
func (a *API) UpdateAboutContent(c *gin.Context) {
	var payload map[string]any
	if !bindJSON(c, &payload, "内容格式不正确") {
		return
	}

	ctx, collector := requestContext(c)
	err := a.about.Update(ctx, store.Fields(payload))
	messages := collector.Messages()
	flashMessages(c, messages)
	if err != nil {
		handleContentError(c, err, messages, "保存失败，请稍后重试")
		return
	}

	record, _ := a.about.Record()
	c.JSON(http.StatusOK, gin.H{
		"message":       "关于页面已更新",
		"about":         record,
		"notifications": messages,
	})
}
