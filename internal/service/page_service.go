package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/foresight/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound     = errors.New("page not found")
	ErrPageTitleMissing = errors.New("page title is required")
)

// PageService provides access to the ordered content sections of the site.
type PageService struct {
	db *gorm.DB
}

// NewPageService returns a new PageService instance.
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// ListPublished returns published pages in display order.
// Ties on rank fall back to id so repeated fetches stay stable.
func (s *PageService) ListPublished() ([]db.Page, error) {
	var pages []db.Page
	if err := s.db.Where("published = ?", true).
		Order("rank ASC, id ASC").
		Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("list published pages: %w", err)
	}
	return pages, nil
}

// List returns every page, drafts included, in display order.
func (s *PageService) List() ([]db.Page, error) {
	var pages []db.Page
	if err := s.db.Order("rank ASC, id ASC").Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

// GetByID fetches a single page by its identifier.
func (s *PageService) GetByID(id uint) (*db.Page, error) {
	var page db.Page
	if err := s.db.First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("get page: %w", err)
	}
	return &page, nil
}

// PageUpdateInput 描述编辑器一次保存时写入的全部字段。
type PageUpdateInput struct {
	Title     string
	Subtitle  string
	Content   string
	Rank      int
	Published bool
}

// Update overwrites the editable fields of a page in a single write.
// The caller's copy wins unconditionally; there is no version check,
// so concurrent edits from another session are silently replaced.
func (s *PageService) Update(id uint, input PageUpdateInput) (*db.Page, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrPageTitleMissing
	}

	var page db.Page
	if err := s.db.First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("load page for update: %w", err)
	}

	page.Title = title
	page.Subtitle = strings.TrimSpace(input.Subtitle)
	page.Content = input.Content
	page.Rank = input.Rank
	page.Published = input.Published

	if err := s.db.Save(&page).Error; err != nil {
		return nil, fmt.Errorf("save page: %w", err)
	}

	return &page, nil
}
