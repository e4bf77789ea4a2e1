package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 固定的开发测试账号，仅通过内部种子端点创建。
const (
	devUserEmail       = "test@test.kr"
	devUserPassword    = "1234"
	devUserDisplayName = "Test User"
)

// CORSMiddleware answers the provisioning endpoint's browser contract,
// including the OPTIONS preflight.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	allowAny := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAny = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAny {
			c.Header("Access-Control-Allow-Origin", "*")
			c.Header("Access-Control-Allow-Methods", "POST,OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization,Content-Type")
		} else if origin != "" {
			if _, ok := allowed[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Access-Control-Allow-Methods", "POST,OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Authorization,Content-Type")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SeedDevUser idempotently ensures the fixed development account
// exists and carries the admin role. Not part of the end-user surface.
func (a *API) SeedDevUser(c *gin.Context) {
	profile, created, err := a.accounts.EnsureDevUser(devUserEmail, devUserPassword, devUserDisplayName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !created {
		c.JSON(http.StatusOK, gin.H{
			"message": "Dev user already exists",
			"user":    profileView(profile),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Dev user created successfully",
		"email":    devUserEmail,
		"password": devUserPassword,
		"user":     profileView(profile),
	})
}
