package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/foresight/internal/db"
	"github.com/foresight/internal/service"
	"github.com/gin-gonic/gin"
)

// ShowEditor renders the content editor with every page, drafts
// included. ?page selects a page; the first one is selected by
// default. Switching the selection is a plain re-render, so any
// unsaved client-side edit is discarded on reselect.
func (a *API) ShowEditor(c *gin.Context) {
	pages, err := a.pages.List()
	if err != nil {
		c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "editor.html", gin.H{
			"title": "Content Editor",
			"error": "Failed to load pages",
			"pages": []db.Page{},
		})
		return
	}

	var selected *db.Page
	if raw := c.Query("page"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			for i := range pages {
				if pages[i].ID == uint(id) {
					selected = &pages[i]
					break
				}
			}
		}
	}
	if selected == nil && len(pages) > 0 {
		selected = &pages[0]
	}

	a.renderHTML(c, http.StatusOK, "editor.html", gin.H{
		"title":    "Content Editor",
		"pages":    pages,
		"selected": selected,
	})
}

// ListPages 返回全部页面（含草稿），按展示顺序排列。
func (a *API) ListPages(c *gin.Context) {
	pages, err := a.pages.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load pages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

// GetPage 返回单个页面。
func (a *API) GetPage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid page id")
		return
	}

	page, err := a.pages.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "page not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to load page")
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

type pageUpdatePayload struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Content   string `json:"content"`
	Rank      int    `json:"rank"`
	Published bool   `json:"published"`
}

// UpdatePage persists one save from the editor: a full overwrite of
// title, subtitle, content, rank and the publish flag keyed by page
// id. Last write wins; there is no conflict detection.
func (a *API) UpdatePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid page id")
		return
	}

	var payload pageUpdatePayload
	if !bindJSON(c, &payload, "invalid page payload") {
		return
	}

	page, err := a.pages.Update(id, service.PageUpdateInput{
		Title:     payload.Title,
		Subtitle:  payload.Subtitle,
		Content:   payload.Content,
		Rank:      payload.Rank,
		Published: payload.Published,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPageTitleMissing):
			respondError(c, http.StatusBadRequest, "Please provide a page title")
		case errors.Is(err, service.ErrPageNotFound):
			respondError(c, http.StatusNotFound, "page not found")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to save changes")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Changes saved successfully",
		"page":    page,
	})
}

// GetSiteSettings 读取站点设置，仅管理员可用。
func (a *API) GetSiteSettings(c *gin.Context) {
	settings, err := a.settings.GetSettings()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load site settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"settings": gin.H{
			"site_name":          settings.SiteName,
			"public_footer_text": settings.PublicFooterText,
		},
	})
}

type siteSettingsPayload struct {
	SiteName         string `json:"site_name"`
	PublicFooterText string `json:"public_footer_text"`
}

// UpdateSiteSettings 写入站点设置，仅管理员可用。
func (a *API) UpdateSiteSettings(c *gin.Context) {
	var payload siteSettingsPayload
	if !bindJSON(c, &payload, "invalid settings payload") {
		return
	}

	if err := a.settings.UpdateSettings(service.SiteSettingsInput{
		SiteName:         payload.SiteName,
		PublicFooterText: payload.PublicFooterText,
	}); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to save site settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Site settings saved"})
}
