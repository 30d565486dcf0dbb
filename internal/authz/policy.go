package authz

import "github.com/weebHarsh/ticketing-portal-sub000/internal/domain"

// Action identifies an operation subject to the authorization policy.
type Action string

const (
	ActionChangeStatus     Action = "change_status"
	ActionReopenClosed     Action = "reopen_closed"
	ActionAssign           Action = "assign"
	ActionRedirect         Action = "redirect"
	ActionEditTicket       Action = "edit_ticket"
	ActionSoftDelete       Action = "soft_delete"
	ActionRestore          Action = "restore"
	ActionHardDelete       Action = "hard_delete"
	ActionComment          Action = "comment"
	ActionDeleteAttachment Action = "delete_attachment"
	ActionManageMaster     Action = "manage_master_data"
	ActionManageUsers      Action = "manage_users"
	ActionViewReports      Action = "view_reports"
)

// Relationship is a bit set describing how a user relates to a ticket.
type Relationship uint8

const (
	RelNone     Relationship = 0
	RelCreator  Relationship = 1 << iota
	RelAssignee
	RelSpoc
	RelUploader
)

// Has reports whether rel contains r.
func (rel Relationship) Has(r Relationship) bool {
	return rel&r != 0
}

// Relate computes the relationship between a user and a ticket.
func Relate(user *domain.User, ticket *domain.Ticket) Relationship {
	if user == nil || ticket == nil {
		return RelNone
	}
	rel := RelNone
	if ticket.CreatedBy == user.ID {
		rel |= RelCreator
	}
	if ticket.AssignedTo != nil && *ticket.AssignedTo == user.ID {
		rel |= RelAssignee
	}
	if ticket.SpocID != nil && *ticket.SpocID == user.ID {
		rel |= RelSpoc
	}
	return rel
}

// rule describes who may perform an action: admins always may when
// adminAllowed is set; anyActive opens the action to every active account;
// otherwise any of the listed relationships suffices.
type rule struct {
	adminAllowed  bool
	anyActive     bool
	relationships Relationship
}

// policy is the single authorization table replacing per-endpoint checks.
var policy = map[Action]rule{
	ActionChangeStatus:     {adminAllowed: true, relationships: RelSpoc | RelAssignee},
	ActionReopenClosed:     {adminAllowed: true},
	ActionAssign:           {adminAllowed: true, relationships: RelSpoc},
	ActionRedirect:         {adminAllowed: true, relationships: RelSpoc},
	ActionEditTicket:       {adminAllowed: true, relationships: RelCreator | RelSpoc},
	ActionSoftDelete:       {adminAllowed: true, relationships: RelCreator},
	ActionRestore:          {adminAllowed: true},
	ActionHardDelete:       {adminAllowed: true},
	ActionComment:          {adminAllowed: true, anyActive: true},
	ActionDeleteAttachment: {adminAllowed: true, relationships: RelUploader},
	ActionManageMaster:     {adminAllowed: true},
	ActionManageUsers:      {adminAllowed: true},
	ActionViewReports:      {adminAllowed: true},
}

// Can decides whether user with relationship rel may perform action.
func Can(user *domain.User, rel Relationship, action Action) bool {
	if user == nil || !user.IsActive {
		return false
	}
	r, ok := policy[action]
	if !ok {
		return false
	}
	if r.adminAllowed && user.Role == domain.RoleAdmin {
		return true
	}
	if r.anyActive {
		return true
	}
	return rel&r.relationships != 0
}

// CanOnTicket is a convenience wrapper computing the relationship first.
func CanOnTicket(user *domain.User, ticket *domain.Ticket, action Action) bool {
	return Can(user, Relate(user, ticket), action)
}
