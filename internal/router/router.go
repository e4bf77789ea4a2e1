package router

import (
	"net/http"
	"strings"

	"github.com/foresight/internal/db"
	"github.com/foresight/internal/handler"
	"github.com/foresight/internal/web"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// 会话 cookie 的有效期（秒）。
const sessionMaxAge = 86400 * 30

// Options 控制路由装配时的可变部分。
type Options struct {
	SessionSecret  string
	SecureCookies  bool
	UploadDir      string
	UploadURLPath  string
	EnableDevSeed  bool
	AllowedOrigins []string
}

// SetupRouter 配置 Gin 引擎和路由。
func SetupRouter(opts Options) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件。cookie 选项必须显式设置：底层 store 默认
	// Secure=true，在纯 HTTP 部署下浏览器会直接丢弃会话 cookie。
	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		Secure:   opts.SecureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("foresight_session", store))

	// 模板编译进二进制，渲染不依赖工作目录
	r.SetHTMLTemplate(web.Templates())

	// 静态文件服务；上传目录在 /static 之外时单独挂载
	r.Static("/static", "./web/static")
	if opts.UploadURLPath != "" && !strings.HasPrefix(opts.UploadURLPath, "/static") {
		r.Static(opts.UploadURLPath, opts.UploadDir)
	}

	api := handler.NewAPI(db.DB, opts.UploadDir, opts.UploadURLPath)

	// 每个请求都先做一次会话探测
	r.Use(api.CurrentUser())

	r.GET("/", api.ShowHome)
	r.GET("/about", api.ShowAbout)

	auth := r.Group("/auth")
	{
		auth.GET("/login", api.ShowLogin)
		auth.POST("/login", api.SignIn)
		auth.GET("/register", api.ShowRegister)
		auth.POST("/register", api.SignUp)
		auth.GET("/logout", api.SignOut)
	}

	me := r.Group("/me")
	me.Use(handler.AuthRequired())
	{
		me.GET("", api.ShowAccount)
	}

	account := r.Group("/account/api")
	account.Use(handler.AuthRequired())
	{
		account.PUT("/profile", api.UpdateAccountProfile)
		account.POST("/avatar", api.UploadAvatar)
	}

	editor := r.Group("/editor")
	editor.Use(handler.AuthRequired())
	{
		editor.GET("", api.ShowEditor)

		editorAPI := editor.Group("/api")
		{
			editorAPI.GET("/pages", api.ListPages)
			editorAPI.GET("/pages/:id", api.GetPage)
			editorAPI.PUT("/pages/:id", api.UpdatePage)

			settings := editorAPI.Group("/settings")
			settings.Use(handler.AdminRequired())
			{
				settings.GET("", api.GetSiteSettings)
				settings.PUT("", api.UpdateSiteSettings)
			}
		}
	}

	if opts.EnableDevSeed {
		internal := r.Group("/internal", handler.CORSMiddleware(opts.AllowedOrigins))
		{
			internal.POST("/api/seed-dev-user", api.SeedDevUser)
			internal.OPTIONS("/api/seed-dev-user", func(c *gin.Context) {})
		}
	}

	return r
}
