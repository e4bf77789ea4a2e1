package handler

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

type sectionViewModel struct {
	Slug     string
	Title    string
	Subtitle string
	Body     template.HTML
}

// ShowHome renders the landing page: every published page becomes one
// section addressable by its slug anchor, in ascending rank order.
// A fetch failure renders the same empty main region as zero published
// pages; the reader view has no distinct error state.
func (a *API) ShowHome(c *gin.Context) {
	sections := make([]sectionViewModel, 0)

	pages, err := a.pages.ListPublished()
	if err != nil {
		c.Error(err)
	} else {
		for _, page := range pages {
			sections = append(sections, sectionViewModel{
				Slug:     page.Slug,
				Title:    page.Title,
				Subtitle: page.Subtitle,
				Body:     renderMarkdown(page.Content),
			})
		}
	}

	// 导航直接复用本次查询的小节，避免 renderHTML 再查一遍
	nav := make([]navLink, 0, len(sections))
	for _, section := range sections {
		nav = append(nav, navLink{Slug: section.Slug, Title: section.Title})
	}

	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"title":    "Home",
		"sections": sections,
		"nav":      nav,
	})
}

// ShowAbout renders the static about page.
func (a *API) ShowAbout(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "about.html", gin.H{
		"title": "About",
	})
}
