package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/storefront/internal/auth"
	"github.com/storefront/internal/notify"
)

const (
	sessionActorKey    = "actor_id"
	sessionUsernameKey = "username"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 校验账号密码并写入会话
func (a *API) Login(c *gin.Context) {
	var payload loginRequest
	if !bindJSON(c, &payload, "请输入用户名和密码") {
		return
	}

	actor, err := auth.Authenticate(c.Request.Context(), a.db, payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "用户名或密码错误")
			return
		}
		log.Error().Err(err).Msg("login lookup failed")
		respondError(c, http.StatusInternalServerError, "登录失败，请稍后重试")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionActorKey, actor.ID)
	session.Set(sessionUsernameKey, actor.Username)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "登录成功", "username": actor.Username})
}

// Logout 清空会话
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Warn().Err(err).Msg("clear session failed")
	}
	c.JSON(http.StatusOK, gin.H{"message": "已退出登录"})
}

// Flashes 返回并清空会话中的提示
func (a *API) Flashes(c *gin.Context) {
	session := sessions.Default(c)
	success := session.Flashes(string(notify.LevelSuccess))
	failures := session.Flashes(string(notify.LevelError))
	if err := session.Save(); err != nil {
		log.Warn().Err(err).Msg("save session after reading flashes failed")
	}
	c.JSON(http.StatusOK, gin.H{"success": success, "error": failures})
}

// AuthRequired 校验会话，并把操作者写入请求 ctx
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		actorID, _ := session.Get(sessionActorKey).(string)
		if actorID == "" {
			respondError(c, http.StatusUnauthorized, "请先登录")
			c.Abort()
			return
		}

		username, _ := session.Get(sessionUsernameKey).(string)
		ctx := auth.WithActor(c.Request.Context(), auth.Actor{ID: actorID, Username: username})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
