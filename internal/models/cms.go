package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SiteContent struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	SectionID    string    `json:"section_id" gorm:"uniqueIndex:idx_section_content;not null"`
	ContentKey   string    `json:"content_key" gorm:"uniqueIndex:idx_section_content;not null"`
	ContentValue string    `json:"content_value"`
	ContentType  string    `json:"content_type" gorm:"default:text"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (SiteContent) TableName() string { return "site_content" }

func (c *SiteContent) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type SiteMedia struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	MediaKey  string    `json:"media_key" gorm:"uniqueIndex;not null"`
	FileName  string    `json:"file_name" gorm:"not null"`
	FileURL   string    `json:"file_url" gorm:"not null"`
	FileType  string    `json:"file_type"`
	FileSize  int64     `json:"file_size"`
	AltText   *string   `json:"alt_text,omitempty"`
	SectionID *string   `json:"section_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (SiteMedia) TableName() string { return "site_media" }

func (m *SiteMedia) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type SiteSection struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	SectionKey    string    `json:"section_key" gorm:"uniqueIndex;not null"`
	SectionName   string    `json:"section_name" gorm:"not null"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
	DisplayOrder  int       `json:"display_order" gorm:"default:0"`
	SectionConfig *string   `json:"section_config,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (SiteSection) TableName() string { return "site_sections" }

func (s *SiteSection) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type SiteNavigation struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	NavKey       string    `json:"nav_key" gorm:"uniqueIndex;not null"`
	Label        string    `json:"label" gorm:"not null"`
	Href         string    `json:"href" gorm:"not null"`
	Icon         *string   `json:"icon,omitempty"`
	DisplayOrder int       `json:"display_order" gorm:"default:0"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (SiteNavigation) TableName() string { return "site_navigation" }

func (n *SiteNavigation) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

type SiteSetting struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	SettingKey   string    `json:"setting_key" gorm:"uniqueIndex;not null"`
	SettingValue string    `json:"setting_value"`
	SettingType  string    `json:"setting_type" gorm:"default:text"`
	Description  *string   `json:"description,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (SiteSetting) TableName() string { return "site_settings" }

func (s *SiteSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
