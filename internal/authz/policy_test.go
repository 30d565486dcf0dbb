package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
)

func int64Ptr(v int64) *int64 { return &v }

func TestRelate(t *testing.T) {
	ticket := &domain.Ticket{CreatedBy: 2, AssignedTo: int64Ptr(7), SpocID: int64Ptr(3)}

	assert.Equal(t, RelCreator, Relate(&domain.User{ID: 2}, ticket))
	assert.Equal(t, RelAssignee, Relate(&domain.User{ID: 7}, ticket))
	assert.Equal(t, RelSpoc, Relate(&domain.User{ID: 3}, ticket))
	assert.Equal(t, RelNone, Relate(&domain.User{ID: 99}, ticket))
	assert.Equal(t, RelNone, Relate(nil, ticket))

	// One user can hold several relationships at once.
	both := &domain.Ticket{CreatedBy: 3, SpocID: int64Ptr(3)}
	rel := Relate(&domain.User{ID: 3}, both)
	assert.True(t, rel.Has(RelCreator))
	assert.True(t, rel.Has(RelSpoc))
}

func TestCanDeniesInactiveUsers(t *testing.T) {
	inactive := &domain.User{ID: 1, Role: domain.RoleAdmin, IsActive: false}
	assert.False(t, Can(inactive, RelNone, ActionHardDelete))
}

func TestCanAdminBypassesRelationships(t *testing.T) {
	adminUser := &domain.User{ID: 1, Role: domain.RoleAdmin, IsActive: true}

	for _, action := range []Action{
		ActionChangeStatus, ActionReopenClosed, ActionAssign, ActionRedirect,
		ActionEditTicket, ActionSoftDelete, ActionRestore, ActionHardDelete,
		ActionManageMaster, ActionManageUsers, ActionViewReports,
	} {
		assert.True(t, Can(adminUser, RelNone, action), "admin denied %s", action)
	}
}

func TestCanRelationshipRules(t *testing.T) {
	agent := &domain.User{ID: 9, Role: domain.RoleSupportAgent, IsActive: true}

	assert.True(t, Can(agent, RelSpoc, ActionChangeStatus))
	assert.True(t, Can(agent, RelAssignee, ActionChangeStatus))
	assert.False(t, Can(agent, RelCreator, ActionChangeStatus))

	assert.True(t, Can(agent, RelSpoc, ActionAssign))
	assert.False(t, Can(agent, RelAssignee, ActionAssign))

	assert.True(t, Can(agent, RelCreator, ActionSoftDelete))
	assert.False(t, Can(agent, RelSpoc, ActionSoftDelete))

	assert.True(t, Can(agent, RelCreator, ActionEditTicket))
	assert.True(t, Can(agent, RelSpoc, ActionEditTicket))
	assert.False(t, Can(agent, RelAssignee, ActionEditTicket))

	// Commenting is open to every active account.
	assert.True(t, Can(agent, RelNone, ActionComment))

	assert.True(t, Can(agent, RelUploader, ActionDeleteAttachment))
	assert.False(t, Can(agent, RelCreator, ActionDeleteAttachment))

	// Admin-only actions stay closed regardless of relationship.
	assert.False(t, Can(agent, RelCreator|RelSpoc|RelAssignee, ActionRestore))
	assert.False(t, Can(agent, RelSpoc, ActionReopenClosed))
	assert.False(t, Can(agent, RelNone, ActionManageUsers))
}
