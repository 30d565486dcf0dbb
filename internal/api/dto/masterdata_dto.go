package dto

import "time"

// GroupRequest payload for business unit groups.
type GroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// CategoryRequest payload.
type CategoryRequest struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active"`
}

// SubcategoryRequest payload.
type SubcategoryRequest struct {
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
	IsActive   *bool  `json:"is_active"`
}

// MappingRequest payload for classification mappings.
type MappingRequest struct {
	GroupID                  int64  `json:"group_id"`
	CategoryID               int64  `json:"category_id"`
	SubcategoryID            *int64 `json:"subcategory_id"`
	DescriptionTemplate      string `json:"description_template"`
	EstimatedDurationMinutes int    `json:"estimated_duration_minutes"`
	DefaultSpocID            int64  `json:"default_spoc_id"`
}

// ProjectRequest payload.
type ProjectRequest struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active"`
}

// ReleaseRequest payload.
type ReleaseRequest struct {
	ProjectID   int64      `json:"project_id"`
	Version     string     `json:"version"`
	ReleaseDate *time.Time `json:"release_date"`
}

// TeamMemberRequest payload.
type TeamMemberRequest struct {
	GroupID int64 `json:"group_id"`
	UserID  int64 `json:"user_id"`
}
