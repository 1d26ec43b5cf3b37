// Package auth carries the authenticated actor through request contexts.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/storefront/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials 在用户名或密码错误时返回。
var ErrInvalidCredentials = errors.New("invalid username or password")

// Actor 是当前登录的操作者。
type Actor struct {
	ID       string
	Username string
}

type actorKey struct{}

// WithActor 返回携带 actor 的新 ctx。
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom 读取 ctx 上的 actor，未登录时 ok 为 false。
func ActorFrom(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	actor, ok := ctx.Value(actorKey{}).(Actor)
	if !ok || strings.TrimSpace(actor.ID) == "" {
		return Actor{}, false
	}
	return actor, true
}

// Authenticate 校验用户名与 bcrypt 密码。
func Authenticate(ctx context.Context, gdb *gorm.DB, username, password string) (Actor, error) {
	var user db.User
	if err := gdb.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Actor{}, ErrInvalidCredentials
		}
		return Actor{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return Actor{}, ErrInvalidCredentials
	}

	return Actor{ID: user.ActorID, Username: user.Username}, nil
}
