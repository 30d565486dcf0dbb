package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/events"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/repository"
)

type mockTicketRepo struct {
	createFunc       func(ctx context.Context, ticket *domain.Ticket) error
	updateFunc       func(ctx context.Context, ticket *domain.Ticket) error
	getByIDFunc      func(ctx context.Context, id int64) (*domain.Ticket, error)
	getByKeyFunc     func(ctx context.Context, key string) (*domain.Ticket, error)
	listFunc         func(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error)
	hardDeleteFunc   func(ctx context.Context, id int64) error
	countForUserFunc func(ctx context.Context, userID int64) (int64, error)
}

func (m *mockTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, ticket)
	}
	ticket.ID = 1
	return nil
}

func (m *mockTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, ticket)
	}
	return nil
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockTicketRepo) GetByKey(ctx context.Context, key string) (*domain.Ticket, error) {
	if m.getByKeyFunc != nil {
		return m.getByKeyFunc(ctx, key)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockTicketRepo) HardDelete(ctx context.Context, id int64) error {
	if m.hardDeleteFunc != nil {
		return m.hardDeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTicketRepo) CountForUser(ctx context.Context, userID int64) (int64, error) {
	if m.countForUserFunc != nil {
		return m.countForUserFunc(ctx, userID)
	}
	return 0, nil
}

type mockUserRepo struct {
	createFunc     func(ctx context.Context, user *domain.User) error
	updateFunc     func(ctx context.Context, user *domain.User) error
	getByIDFunc    func(ctx context.Context, id int64) (*domain.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	listFunc       func(ctx context.Context, filter repository.UserFilter) ([]domain.User, error)
	hardDeleteFunc func(ctx context.Context, id int64) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockUserRepo) HardDelete(ctx context.Context, id int64) error {
	if m.hardDeleteFunc != nil {
		return m.hardDeleteFunc(ctx, id)
	}
	return nil
}

type mockGroupRepo struct {
	createFunc  func(ctx context.Context, group *domain.BusinessUnitGroup) error
	updateFunc  func(ctx context.Context, group *domain.BusinessUnitGroup) error
	getByIDFunc func(ctx context.Context, id int64) (*domain.BusinessUnitGroup, error)
	listFunc    func(ctx context.Context, activeOnly bool) ([]domain.BusinessUnitGroup, error)
	deleteFunc  func(ctx context.Context, id int64) error
}

func (m *mockGroupRepo) Create(ctx context.Context, group *domain.BusinessUnitGroup) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, group)
	}
	group.ID = 1
	return nil
}

func (m *mockGroupRepo) Update(ctx context.Context, group *domain.BusinessUnitGroup) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, group)
	}
	return nil
}

func (m *mockGroupRepo) GetByID(ctx context.Context, id int64) (*domain.BusinessUnitGroup, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &domain.BusinessUnitGroup{ID: id, Name: "IT Support", IsActive: true}, nil
}

func (m *mockGroupRepo) List(ctx context.Context, activeOnly bool) ([]domain.BusinessUnitGroup, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, activeOnly)
	}
	return nil, nil
}

func (m *mockGroupRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockCommentRepo struct {
	createFunc func(ctx context.Context, comment *domain.Comment) error
	listFunc   func(ctx context.Context, ticketID int64) ([]domain.Comment, error)
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, comment)
	}
	comment.ID = 1
	return nil
}

func (m *mockCommentRepo) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Comment, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockAttachmentRepo struct {
	createFunc  func(ctx context.Context, attachment *domain.Attachment) error
	getByIDFunc func(ctx context.Context, id int64) (*domain.Attachment, error)
	listFunc    func(ctx context.Context, ticketID int64) ([]domain.Attachment, error)
	deleteFunc  func(ctx context.Context, id int64) error
}

func (m *mockAttachmentRepo) Create(ctx context.Context, attachment *domain.Attachment) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, attachment)
	}
	attachment.ID = 1
	return nil
}

func (m *mockAttachmentRepo) GetByID(ctx context.Context, id int64) (*domain.Attachment, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockAttachmentRepo) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Attachment, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockAttachmentRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockRedirectRepo struct {
	createFunc func(ctx context.Context, redirect *domain.Redirect) error
	listFunc   func(ctx context.Context, ticketID int64) ([]domain.Redirect, error)
}

func (m *mockRedirectRepo) Create(ctx context.Context, redirect *domain.Redirect) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, redirect)
	}
	redirect.ID = 1
	return nil
}

func (m *mockRedirectRepo) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Redirect, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockStatusChangeRepo struct {
	createFunc func(ctx context.Context, change *domain.StatusChange) error
	listFunc   func(ctx context.Context, ticketID int64) ([]domain.StatusChange, error)
}

func (m *mockStatusChangeRepo) Create(ctx context.Context, change *domain.StatusChange) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, change)
	}
	change.ID = 1
	return nil
}

func (m *mockStatusChangeRepo) ListByTicket(ctx context.Context, ticketID int64) ([]domain.StatusChange, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockMappingRepo struct {
	createFunc    func(ctx context.Context, mapping *domain.ClassificationMapping) error
	updateFunc    func(ctx context.Context, mapping *domain.ClassificationMapping) error
	getByIDFunc   func(ctx context.Context, id int64) (*domain.ClassificationMapping, error)
	listFunc      func(ctx context.Context, groupID *int64) ([]domain.ClassificationMapping, error)
	deleteFunc    func(ctx context.Context, id int64) error
	findMatchFunc func(ctx context.Context, groupID, categoryID int64, subcategoryID *int64) (*domain.ClassificationMapping, error)
}

func (m *mockMappingRepo) Create(ctx context.Context, mapping *domain.ClassificationMapping) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, mapping)
	}
	mapping.ID = 1
	return nil
}

func (m *mockMappingRepo) Update(ctx context.Context, mapping *domain.ClassificationMapping) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, mapping)
	}
	return nil
}

func (m *mockMappingRepo) GetByID(ctx context.Context, id int64) (*domain.ClassificationMapping, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockMappingRepo) List(ctx context.Context, groupID *int64) ([]domain.ClassificationMapping, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, groupID)
	}
	return nil, nil
}

func (m *mockMappingRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockMappingRepo) FindMatch(ctx context.Context, groupID, categoryID int64, subcategoryID *int64) (*domain.ClassificationMapping, error) {
	if m.findMatchFunc != nil {
		return m.findMatchFunc(ctx, groupID, categoryID, subcategoryID)
	}
	return nil, pgx.ErrNoRows
}

type mockCategoryRepo struct {
	createCategoryFunc    func(ctx context.Context, category *domain.Category) error
	updateCategoryFunc    func(ctx context.Context, category *domain.Category) error
	getCategoryFunc       func(ctx context.Context, id int64) (*domain.Category, error)
	listCategoriesFunc    func(ctx context.Context, activeOnly bool) ([]domain.Category, error)
	deleteCategoryFunc    func(ctx context.Context, id int64) error
	createSubcategoryFunc func(ctx context.Context, sub *domain.Subcategory) error
	updateSubcategoryFunc func(ctx context.Context, sub *domain.Subcategory) error
	getSubcategoryFunc    func(ctx context.Context, id int64) (*domain.Subcategory, error)
	listSubcategoriesFunc func(ctx context.Context, categoryID int64) ([]domain.Subcategory, error)
	deleteSubcategoryFunc func(ctx context.Context, id int64) error
}

func (m *mockCategoryRepo) CreateCategory(ctx context.Context, category *domain.Category) error {
	if m.createCategoryFunc != nil {
		return m.createCategoryFunc(ctx, category)
	}
	category.ID = 1
	return nil
}

func (m *mockCategoryRepo) UpdateCategory(ctx context.Context, category *domain.Category) error {
	if m.updateCategoryFunc != nil {
		return m.updateCategoryFunc(ctx, category)
	}
	return nil
}

func (m *mockCategoryRepo) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	if m.getCategoryFunc != nil {
		return m.getCategoryFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockCategoryRepo) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	if m.listCategoriesFunc != nil {
		return m.listCategoriesFunc(ctx, activeOnly)
	}
	return nil, nil
}

func (m *mockCategoryRepo) DeleteCategory(ctx context.Context, id int64) error {
	if m.deleteCategoryFunc != nil {
		return m.deleteCategoryFunc(ctx, id)
	}
	return nil
}

func (m *mockCategoryRepo) CreateSubcategory(ctx context.Context, sub *domain.Subcategory) error {
	if m.createSubcategoryFunc != nil {
		return m.createSubcategoryFunc(ctx, sub)
	}
	sub.ID = 1
	return nil
}

func (m *mockCategoryRepo) UpdateSubcategory(ctx context.Context, sub *domain.Subcategory) error {
	if m.updateSubcategoryFunc != nil {
		return m.updateSubcategoryFunc(ctx, sub)
	}
	return nil
}

func (m *mockCategoryRepo) GetSubcategoryByID(ctx context.Context, id int64) (*domain.Subcategory, error) {
	if m.getSubcategoryFunc != nil {
		return m.getSubcategoryFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockCategoryRepo) ListSubcategories(ctx context.Context, categoryID int64) ([]domain.Subcategory, error) {
	if m.listSubcategoriesFunc != nil {
		return m.listSubcategoriesFunc(ctx, categoryID)
	}
	return nil, nil
}

func (m *mockCategoryRepo) DeleteSubcategory(ctx context.Context, id int64) error {
	if m.deleteSubcategoryFunc != nil {
		return m.deleteSubcategoryFunc(ctx, id)
	}
	return nil
}

type mockProjectRepo struct {
	createProjectFunc func(ctx context.Context, project *domain.Project) error
	updateProjectFunc func(ctx context.Context, project *domain.Project) error
	getProjectFunc    func(ctx context.Context, id int64) (*domain.Project, error)
	listProjectsFunc  func(ctx context.Context, activeOnly bool) ([]domain.Project, error)
	deleteProjectFunc func(ctx context.Context, id int64) error
	createReleaseFunc func(ctx context.Context, release *domain.ProductRelease) error
	listReleasesFunc  func(ctx context.Context, projectID int64) ([]domain.ProductRelease, error)
	deleteReleaseFunc func(ctx context.Context, id int64) error
}

func (m *mockProjectRepo) CreateProject(ctx context.Context, project *domain.Project) error {
	if m.createProjectFunc != nil {
		return m.createProjectFunc(ctx, project)
	}
	project.ID = 1
	return nil
}

func (m *mockProjectRepo) UpdateProject(ctx context.Context, project *domain.Project) error {
	if m.updateProjectFunc != nil {
		return m.updateProjectFunc(ctx, project)
	}
	return nil
}

func (m *mockProjectRepo) GetProjectByID(ctx context.Context, id int64) (*domain.Project, error) {
	if m.getProjectFunc != nil {
		return m.getProjectFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockProjectRepo) ListProjects(ctx context.Context, activeOnly bool) ([]domain.Project, error) {
	if m.listProjectsFunc != nil {
		return m.listProjectsFunc(ctx, activeOnly)
	}
	return nil, nil
}

func (m *mockProjectRepo) DeleteProject(ctx context.Context, id int64) error {
	if m.deleteProjectFunc != nil {
		return m.deleteProjectFunc(ctx, id)
	}
	return nil
}

func (m *mockProjectRepo) CreateRelease(ctx context.Context, release *domain.ProductRelease) error {
	if m.createReleaseFunc != nil {
		return m.createReleaseFunc(ctx, release)
	}
	release.ID = 1
	return nil
}

func (m *mockProjectRepo) ListReleases(ctx context.Context, projectID int64) ([]domain.ProductRelease, error) {
	if m.listReleasesFunc != nil {
		return m.listReleasesFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockProjectRepo) DeleteRelease(ctx context.Context, id int64) error {
	if m.deleteReleaseFunc != nil {
		return m.deleteReleaseFunc(ctx, id)
	}
	return nil
}

type mockTeamMemberRepo struct {
	addFunc         func(ctx context.Context, member *domain.TeamMember) error
	removeFunc      func(ctx context.Context, groupID, userID int64) error
	listByGroupFunc func(ctx context.Context, groupID int64) ([]domain.TeamMember, error)
}

func (m *mockTeamMemberRepo) Add(ctx context.Context, member *domain.TeamMember) error {
	if m.addFunc != nil {
		return m.addFunc(ctx, member)
	}
	member.ID = 1
	return nil
}

func (m *mockTeamMemberRepo) Remove(ctx context.Context, groupID, userID int64) error {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, groupID, userID)
	}
	return nil
}

func (m *mockTeamMemberRepo) ListByGroup(ctx context.Context, groupID int64) ([]domain.TeamMember, error) {
	if m.listByGroupFunc != nil {
		return m.listByGroupFunc(ctx, groupID)
	}
	return nil, nil
}

type mockNotificationRepo struct {
	createFunc      func(ctx context.Context, notification *domain.Notification) error
	listByUserFunc  func(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, error)
	markReadFunc    func(ctx context.Context, userID, notificationID int64) error
	markAllReadFunc func(ctx context.Context, userID int64) error
	countUnreadFunc func(ctx context.Context, userID int64) (int64, error)
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *domain.Notification) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, notification)
	}
	notification.ID = 1
	return nil
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, userID, notificationID int64) error {
	if m.markReadFunc != nil {
		return m.markReadFunc(ctx, userID, notificationID)
	}
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID int64) error {
	if m.markAllReadFunc != nil {
		return m.markAllReadFunc(ctx, userID)
	}
	return nil
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID int64) (int64, error) {
	if m.countUnreadFunc != nil {
		return m.countUnreadFunc(ctx, userID)
	}
	return 0, nil
}

type mockMailer struct {
	assignmentFunc   func(to, ticketKey, title string) error
	spocFunc         func(to, ticketKey, title string) error
	statusChangeFunc func(to, ticketKey, oldStatus, newStatus, remark string) error
}

func (m *mockMailer) SendAssignmentEmail(to, ticketKey, title string) error {
	if m.assignmentFunc != nil {
		return m.assignmentFunc(to, ticketKey, title)
	}
	return nil
}

func (m *mockMailer) SendSpocNewTicketEmail(to, ticketKey, title string) error {
	if m.spocFunc != nil {
		return m.spocFunc(to, ticketKey, title)
	}
	return nil
}

func (m *mockMailer) SendStatusChangeEmail(to, ticketKey, oldStatus, newStatus, remark string) error {
	if m.statusChangeFunc != nil {
		return m.statusChangeFunc(to, ticketKey, oldStatus, newStatus, remark)
	}
	return nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }
