package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/cache"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
)

func newMasterDataService(groups *mockGroupRepo, cats *mockCategoryRepo, mappings *mockMappingRepo) *MasterDataService {
	if groups == nil {
		groups = &mockGroupRepo{}
	}
	if cats == nil {
		cats = &mockCategoryRepo{}
	}
	if mappings == nil {
		mappings = &mockMappingRepo{}
	}
	return NewMasterDataService(MasterDataDependencies{
		GroupRepo:      groups,
		CategoryRepo:   cats,
		MappingRepo:    mappings,
		ProjectRepo:    &mockProjectRepo{},
		TeamMemberRepo: &mockTeamMemberRepo{},
		Cache:          cache.New(nil),
	})
}

func admin() *domain.User {
	return activeUser(1, domain.RoleAdmin)
}

func TestMasterDataMutationsAdminOnly(t *testing.T) {
	svc := newMasterDataService(nil, nil, nil)
	agent := activeUser(9, domain.RoleSupportAgent)
	ctx := context.Background()

	err := svc.CreateGroup(ctx, agent, &domain.BusinessUnitGroup{Name: "Networking"})
	assertDomainCode(t, err, "FORBIDDEN")

	err = svc.CreateCategory(ctx, agent, &domain.Category{Name: "Hardware"})
	assertDomainCode(t, err, "FORBIDDEN")

	err = svc.CreateMapping(ctx, agent, &domain.ClassificationMapping{GroupID: 5, CategoryID: 2, DefaultSpocID: 3})
	assertDomainCode(t, err, "FORBIDDEN")

	_, err = svc.ImportCSV(ctx, agent, "groups", strings.NewReader("name,description,is_active\n"))
	assertDomainCode(t, err, "FORBIDDEN")
}

func TestCreateMappingValidation(t *testing.T) {
	svc := newMasterDataService(nil, nil, nil)
	ctx := context.Background()

	err := svc.CreateMapping(ctx, admin(), &domain.ClassificationMapping{CategoryID: 2, DefaultSpocID: 3})
	assertDomainCode(t, err, "VALIDATION_FAILED")

	err = svc.CreateMapping(ctx, admin(), &domain.ClassificationMapping{GroupID: 5, CategoryID: 2})
	assertDomainCode(t, err, "VALIDATION_FAILED")

	err = svc.CreateMapping(ctx, admin(), &domain.ClassificationMapping{
		GroupID: 5, CategoryID: 2, DefaultSpocID: 3, EstimatedDurationMinutes: -10,
	})
	assertDomainCode(t, err, "VALIDATION_FAILED")

	err = svc.CreateMapping(ctx, admin(), &domain.ClassificationMapping{
		GroupID: 5, CategoryID: 2, DefaultSpocID: 3, EstimatedDurationMinutes: 120,
	})
	require.NoError(t, err)
}

func TestImportCSVRejectsWrongHeader(t *testing.T) {
	svc := newMasterDataService(nil, nil, nil)

	_, err := svc.ImportCSV(context.Background(), admin(), "groups",
		strings.NewReader("title,description\nNetworking,LAN and WAN\n"))
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestImportCSVUnknownEntity(t *testing.T) {
	svc := newMasterDataService(nil, nil, nil)

	_, err := svc.ImportCSV(context.Background(), admin(), "widgets", strings.NewReader("name\n"))
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestImportCSVGroupsCountsRowsAndFailures(t *testing.T) {
	var created []string
	groups := &mockGroupRepo{
		createFunc: func(ctx context.Context, group *domain.BusinessUnitGroup) error {
			group.ID = int64(len(created) + 1)
			created = append(created, group.Name)
			return nil
		},
	}
	svc := newMasterDataService(groups, nil, nil)

	csvBody := "name,description,is_active\n" +
		"Networking,LAN and WAN,true\n" +
		",missing name,true\n" +
		"Facilities,Buildings,false\n"
	result, err := svc.ImportCSV(context.Background(), admin(), "groups", strings.NewReader(csvBody))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, []string{"Networking", "Facilities"}, created)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, 3, result.Failures[0].Line)
	assert.Equal(t, "name required", result.Failures[0].Reason)
}

func TestImportCSVMappingsParsesOptionalFields(t *testing.T) {
	var created []*domain.ClassificationMapping
	mappings := &mockMappingRepo{
		createFunc: func(ctx context.Context, mapping *domain.ClassificationMapping) error {
			mapping.ID = int64(len(created) + 1)
			created = append(created, mapping)
			return nil
		},
	}
	svc := newMasterDataService(nil, nil, mappings)

	csvBody := "group_id,category_id,subcategory_id,description_template,estimated_duration_minutes,default_spoc_id\n" +
		"5,2,7,Reset the VPN profile,120,3\n" +
		"5,2,,Generic support,,3\n" +
		"5,2,7,Bad spoc,120,zero\n"
	result, err := svc.ImportCSV(context.Background(), admin(), "mappings", strings.NewReader(csvBody))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, 4, result.Failures[0].Line)

	require.Len(t, created, 2)
	require.NotNil(t, created[0].SubcategoryID)
	assert.Equal(t, int64(7), *created[0].SubcategoryID)
	assert.Equal(t, 120, created[0].EstimatedDurationMinutes)
	assert.Nil(t, created[1].SubcategoryID)
	assert.Zero(t, created[1].EstimatedDurationMinutes)
}

func TestExportCSVGroups(t *testing.T) {
	groups := &mockGroupRepo{
		listFunc: func(ctx context.Context, activeOnly bool) ([]domain.BusinessUnitGroup, error) {
			return []domain.BusinessUnitGroup{
				{ID: 5, Name: "Networking", Description: "LAN and WAN", IsActive: true},
				{ID: 6, Name: "Facilities", Description: "", IsActive: false},
			}, nil
		},
	}
	svc := newMasterDataService(groups, nil, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), admin(), "groups", &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,description,is_active", lines[0])
	assert.Equal(t, "Networking,LAN and WAN,true", lines[1])
	assert.Equal(t, "Facilities,,false", lines[2])
}

func TestAddAndRemoveTeamMember(t *testing.T) {
	svc := newMasterDataService(nil, nil, nil)
	ctx := context.Background()

	member, err := svc.AddTeamMember(ctx, admin(), 5, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(5), member.GroupID)
	assert.Equal(t, int64(7), member.UserID)

	_, err = svc.AddTeamMember(ctx, activeUser(9, domain.RoleSupportAgent), 5, 7)
	assertDomainCode(t, err, "FORBIDDEN")
}
