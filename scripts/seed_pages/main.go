package main

import (
	"fmt"
	"log"

	"github.com/foresight/internal/config"
	"github.com/foresight/internal/db"
)

// 页面在应用内没有创建入口，首次部署时由本脚本写入初始小节。
func main() {
	cfg := config.Load()

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("failed to initialize database: ", err)
	}

	var count int64
	db.DB.Model(&db.Page{}).Count(&count)
	if count > 0 {
		fmt.Println("pages already exist, nothing to seed")
		return
	}

	pages := []db.Page{
		{Slug: "summary", Title: "Summary", Rank: 1, Published: true,
			Content: "## Summary\n\nWrite the executive summary here."},
		{Slug: "research", Title: "Research", Rank: 2, Published: true,
			Content: "## Research\n\nWrite the research overview here."},
		{Slug: "compute", Title: "Compute Forecast", Rank: 3,
			Content: "## Compute Forecast\n\nDraft."},
		{Slug: "timelines", Title: "Timelines Forecast", Rank: 4,
			Content: "## Timelines Forecast\n\nDraft."},
		{Slug: "takeoff", Title: "Takeoff Forecast", Rank: 5,
			Content: "## Takeoff Forecast\n\nDraft."},
		{Slug: "goals", Title: "AI Goals Forecast", Rank: 6,
			Content: "## AI Goals Forecast\n\nDraft."},
		{Slug: "security", Title: "Security Forecast", Rank: 7,
			Content: "## Security Forecast\n\nDraft."},
	}

	if err := db.DB.Create(&pages).Error; err != nil {
		log.Fatal("failed to seed pages: ", err)
	}

	fmt.Printf("seeded %d pages\n", len(pages))
}
