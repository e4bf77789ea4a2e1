package handler

import (
	"strings"
	"time"

	"github.com/foresight/internal/db"
	"github.com/foresight/internal/service"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	pages     *service.PageService
	accounts  *service.AccountService
	settings  *service.SiteSettingService
	uploadDir string
	uploadURL string
}

type siteViewModel struct {
	Name   string
	Footer string
}

// navLink 是顶部导航里一个已发布小节的链接。
type navLink struct {
	Slug  string
	Title string
}

const (
	siteSettingsContextKey = "__site_settings"
	navLinksContextKey     = "__nav_links"
)

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, uploadDir, uploadURL string) *API {
	return &API{
		db:        gdb,
		pages:     service.NewPageService(gdb),
		accounts:  service.NewAccountService(gdb),
		settings:  service.NewSiteSettingService(gdb),
		uploadDir: uploadDir,
		uploadURL: uploadURL,
	}
}

func (a *API) siteSettings(c *gin.Context) siteViewModel {
	if cached, exists := c.Get(siteSettingsContextKey); exists {
		if view, ok := cached.(siteViewModel); ok {
			return view
		}
	}

	settings, err := a.settings.GetSettings()
	if err != nil {
		c.Error(err)
	}

	view := siteViewModel{
		Name:   strings.TrimSpace(settings.SiteName),
		Footer: strings.TrimSpace(settings.PublicFooterText),
	}
	if view.Name == "" {
		view.Name = "Foresight Research"
	}
	if view.Footer == "" {
		view.Footer = "© 2025 Foresight Research. All rights reserved."
	}

	c.Set(siteSettingsContextKey, view)
	return view
}

// navSections 返回导航用的已发布小节列表，每个请求只查询一次。
func (a *API) navSections(c *gin.Context) []navLink {
	if cached, exists := c.Get(navLinksContextKey); exists {
		if links, ok := cached.([]navLink); ok {
			return links
		}
	}

	links := make([]navLink, 0)
	pages, err := a.pages.ListPublished()
	if err != nil {
		c.Error(err)
	} else {
		for _, page := range pages {
			links = append(links, navLink{Slug: page.Slug, Title: page.Title})
		}
	}

	c.Set(navLinksContextKey, links)
	return links
}

// renderHTML 在向模板渲染时自动附加站点设置、导航与当前会话信息。
func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	view := a.siteSettings(c)

	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["site"]; !exists {
		payload["site"] = gin.H{
			"name":   view.Name,
			"footer": view.Footer,
		}
	}
	if _, exists := payload["nav"]; !exists {
		payload["nav"] = a.navSections(c)
	}
	if _, exists := payload["user"]; !exists {
		payload["user"] = currentUser(c)
	}
	if _, exists := payload["profile"]; !exists {
		payload["profile"] = currentProfile(c)
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = time.Now().Year()
	}

	c.HTML(status, template, payload)
}

// profileView 将资料行转换为模板与 JSON 友好的结构。
func profileView(profile *db.Profile) gin.H {
	if profile == nil {
		return nil
	}
	return gin.H{
		"id":           profile.ID,
		"email":        profile.Email,
		"display_name": profile.DisplayName,
		"avatar_url":   profile.AvatarURL,
		"role":         profile.Role,
	}
}
