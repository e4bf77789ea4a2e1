package db

import "gorm.io/gorm"

// SiteSetting 存储可配置的站点级键值对。
type SiteSetting struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (SiteSetting) TableName() string {
	return "site_settings"
}

const (
	// SettingKeySiteName 表示站点名称。
	SettingKeySiteName = "site_name"
	// SettingKeyPublicFooterText 表示公共页脚文本。
	SettingKeyPublicFooterText = "public_footer_text"
)
