package service

import (
	"fmt"
	"strings"

	"github.com/foresight/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SiteSettings 描述可配置的站点信息。
type SiteSettings struct {
	SiteName         string
	PublicFooterText string
}

// SiteSettingsInput 用于更新站点设置。
type SiteSettingsInput struct {
	SiteName         string
	PublicFooterText string
}

// SiteSettingService 提供站点设置的读取与更新能力。
type SiteSettingService struct {
	db *gorm.DB
}

// NewSiteSettingService 构造 SiteSettingService。
func NewSiteSettingService(gdb *gorm.DB) *SiteSettingService {
	return &SiteSettingService{db: gdb}
}

var settingKeys = []string{
	db.SettingKeySiteName,
	db.SettingKeyPublicFooterText,
}

// GetSettings 读取站点设置，如未设置将返回默认值。
func (s *SiteSettingService) GetSettings() (SiteSettings, error) {
	result := SiteSettings{
		SiteName:         "Foresight Research",
		PublicFooterText: "© 2025 Foresight Research. All rights reserved.",
	}

	var records []db.SiteSetting
	if err := s.db.Where("key IN ?", settingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load site settings: %w", err)
	}

	for _, record := range records {
		value := strings.TrimSpace(record.Value)
		if value == "" {
			continue
		}
		switch record.Key {
		case db.SettingKeySiteName:
			result.SiteName = value
		case db.SettingKeyPublicFooterText:
			result.PublicFooterText = value
		}
	}

	return result, nil
}

// UpdateSettings 写入站点设置，键已存在时覆盖其值。
func (s *SiteSettingService) UpdateSettings(input SiteSettingsInput) error {
	entries := map[string]string{
		db.SettingKeySiteName:         strings.TrimSpace(input.SiteName),
		db.SettingKeyPublicFooterText: strings.TrimSpace(input.PublicFooterText),
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range entries {
			setting := db.SiteSetting{Key: key, Value: value}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&setting).Error; err != nil {
				return fmt.Errorf("save site setting %s: %w", key, err)
			}
		}
		return nil
	})
}
