package dto

import (
	"time"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title             string                `json:"title"`
	Description       string                `json:"description"`
	Type              domain.TicketType     `json:"type"`
	Priority          domain.TicketPriority `json:"priority"`
	GroupID           int64                 `json:"group_id"`
	CategoryID        *int64                `json:"category_id"`
	SubcategoryID     *int64                `json:"subcategory_id"`
	ProjectID         *int64                `json:"project_id"`
	EstimatedDuration string                `json:"estimated_duration"`
	SpocID            *int64                `json:"spoc_id"`
	ParentTicketID    *int64                `json:"parent_ticket_id"`
}

// UpdateTicketRequest payload. Absent fields are left unchanged.
type UpdateTicketRequest struct {
	Title             *string                `json:"title"`
	Description       *string                `json:"description"`
	Priority          *domain.TicketPriority `json:"priority"`
	CategoryID        *int64                 `json:"category_id"`
	SubcategoryID     *int64                 `json:"subcategory_id"`
	ProjectID         *int64                 `json:"project_id"`
	EstimatedDuration *string                `json:"estimated_duration"`
}

// ChangeStatusRequest payload.
type ChangeStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
	Remark string              `json:"remark"`
}

// AssignRequest payload.
type AssignRequest struct {
	AssigneeID int64  `json:"assignee_id"`
	Remark     string `json:"remark"`
}

// RedirectRequest payload.
type RedirectRequest struct {
	ToGroupID int64  `json:"to_group_id"`
	ToSpocID  int64  `json:"to_spoc_id"`
	Remark    string `json:"remark"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Body string `json:"body"`
}

// CreateAttachmentRequest payload.
type CreateAttachmentRequest struct {
	FileName   string `json:"file_name"`
	SizeBytes  int64  `json:"size_bytes"`
	StorageURL string `json:"storage_url"`
}

// TicketSummary response.
type TicketSummary struct {
	ID                int64                 `json:"id"`
	TicketKey         string                `json:"ticket_key"`
	Title             string                `json:"title"`
	Type              domain.TicketType     `json:"type"`
	Status            domain.TicketStatus   `json:"status"`
	Priority          domain.TicketPriority `json:"priority"`
	CreatedBy         int64                 `json:"created_by"`
	AssignedTo        *int64                `json:"assigned_to"`
	SpocID            *int64                `json:"spoc_id"`
	GroupID           int64                 `json:"group_id"`
	ProjectID         *int64                `json:"project_id"`
	EstimatedDuration string                `json:"estimated_duration,omitempty"`
	ParentTicketID    *int64                `json:"parent_ticket_id"`
	IsDeleted         bool                  `json:"is_deleted"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// TicketDetailResponse provides full ticket info.
type TicketDetailResponse struct {
	TicketSummary
	Description   string                 `json:"description"`
	CategoryID    *int64                 `json:"category_id"`
	SubcategoryID *int64                 `json:"subcategory_id"`
	ResolvedAt    *time.Time             `json:"resolved_at"`
	ClosedAt      *time.Time             `json:"closed_at"`
	HeldAt        *time.Time             `json:"held_at"`
	DeletedAt     *time.Time             `json:"deleted_at"`
	Comments      []CommentResponse      `json:"comments"`
	Attachments   []AttachmentResponse   `json:"attachments"`
	Redirects     []RedirectResponse     `json:"redirects"`
	StatusChanges []StatusChangeResponse `json:"status_changes"`
}

// CommentResponse represents one comment.
type CommentResponse struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// AttachmentResponse metadata.
type AttachmentResponse struct {
	ID         int64     `json:"id"`
	FileName   string    `json:"file_name"`
	SizeBytes  int64     `json:"size_bytes"`
	StorageURL string    `json:"storage_url"`
	UploadedBy int64     `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// RedirectResponse is one escalation audit row.
type RedirectResponse struct {
	ID           int64     `json:"id"`
	FromGroupID  int64     `json:"from_group_id"`
	ToGroupID    int64     `json:"to_group_id"`
	FromSpocID   *int64    `json:"from_spoc_id"`
	ToSpocID     int64     `json:"to_spoc_id"`
	Remark       string    `json:"remark"`
	RedirectedBy int64     `json:"redirected_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// StatusChangeResponse is one lifecycle audit row.
type StatusChangeResponse struct {
	ID         int64               `json:"id"`
	FromStatus domain.TicketStatus `json:"from_status"`
	ToStatus   domain.TicketStatus `json:"to_status"`
	Remark     string              `json:"remark"`
	ChangedBy  int64               `json:"changed_by"`
	CreatedAt  time.Time           `json:"created_at"`
}
