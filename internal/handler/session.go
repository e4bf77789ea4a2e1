package handler

import (
	"net/http"

	"github.com/foresight/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionUserIDKey  = "user_id"
	userContextKey    = "__current_user"
	profileContextKey = "__current_profile"
)

// CurrentUser performs the per-request session probe: it resolves the
// cookie session into the user/profile pair every view reads. A failed
// profile fetch leaves the profile nil while the user stays set;
// views treat that as a transient loading state, not an error.
func (a *API) CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw := session.Get(sessionUserIDKey)
		userID, ok := raw.(uint)
		if !ok {
			c.Next()
			return
		}

		var user db.User
		if err := a.db.First(&user, userID).Error; err != nil {
			// 会话指向的账号已不存在，清理过期 cookie
			session.Clear()
			_ = session.Save()
			c.Next()
			return
		}

		c.Set(userContextKey, &user)

		if profile, err := a.accounts.GetProfile(user.ID); err == nil {
			c.Set(profileContextKey, profile)
		}

		c.Next()
	}
}

// AuthRequired 要求已登录会话，否则跳转到登录页。
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			c.Redirect(http.StatusFound, "/auth/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired 在 AuthRequired 之后使用，要求资料角色为管理员。
// 资料行暂不可用时按未授权处理。
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := currentProfile(c)
		if profile == nil || profile.Role != db.RoleAdmin {
			respondError(c, http.StatusForbidden, "admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *db.User {
	if raw, exists := c.Get(userContextKey); exists {
		if user, ok := raw.(*db.User); ok {
			return user
		}
	}
	return nil
}

func currentProfile(c *gin.Context) *db.Profile {
	if raw, exists := c.Get(profileContextKey); exists {
		if profile, ok := raw.(*db.Profile); ok {
			return profile
		}
	}
	return nil
}
