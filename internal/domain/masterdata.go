package domain

import "time"

// BusinessUnitGroup is an organizational department used to classify and
// route tickets.
type BusinessUnitGroup struct {
	ID          int64
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Category is a top-level ticket classification.
type Category struct {
	ID        int64
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subcategory refines a category.
type Subcategory struct {
	ID         int64
	CategoryID int64
	Name       string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ClassificationMapping supplies ticket defaults for a (group, category,
// subcategory) triple. SubcategoryID may be nil; lookups are
// first-match-wins when the subcategory is absent.
type ClassificationMapping struct {
	ID                       int64
	GroupID                  int64
	CategoryID               int64
	SubcategoryID            *int64
	DescriptionTemplate      string
	EstimatedDurationMinutes int
	DefaultSpocID            int64
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// Project groups requirement tickets under a delivery effort.
type Project struct {
	ID        int64
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductRelease tags tickets against a shipped version.
type ProductRelease struct {
	ID          int64
	ProjectID   int64
	Version     string
	ReleaseDate *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TeamMember links a user to a business unit group roster.
type TeamMember struct {
	ID        int64
	GroupID   int64
	UserID    int64
	CreatedAt time.Time
}
