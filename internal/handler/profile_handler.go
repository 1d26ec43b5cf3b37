package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront/internal/store"
)

// GetContactInfo 返回当前展示的联系方式
func (a *API) GetContactInfo(c *gin.Context) {
	ctx := c.Request.Context()
	a.contact.Attach(context.WithoutCancel(ctx))
	if c.Query("refresh") != "" {
		a.contact.Load(ctx)
	}

	record, ok := a.contact.Record()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"contact": nil, "loading": a.contact.Loading()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact": record, "loading": a.contact.Loading()})
}

// UpdateContactInfo 更新联系方式，只修改请求中出现的字段
func (a *API) UpdateContactInfo(c *gin.Context) {
	var payload map[string]any
	if !bindJSON(c, &payload, "请填写完整的联系信息") {
		return
	}

	ctx, collector := requestContext(c)
	err := a.contact.Update(ctx, store.Fields(payload))
	messages := collector.Messages()
	flashMessages(c, messages)
	if err != nil {
		handleContentError(c, err, messages, "操作失败")
		return
	}

	record, _ := a.contact.Record()
	c.JSON(http.StatusOK, gin.H{
		"message":       "联系信息已更新",
		"contact":       record,
		"notifications": messages,
	})
}
