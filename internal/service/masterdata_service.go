package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/authz"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/cache"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/repository"
	apperrors "github.com/weebHarsh/ticketing-portal-sub000/pkg/util"
)

// MasterDataService manages the reference tables behind the ticket form:
// groups, categories, subcategories, classification mappings, projects,
// releases and group rosters. Mutations are admin only; reads are open to
// any authenticated user.
type MasterDataService struct {
	groups   repository.GroupRepository
	cats     repository.CategoryRepository
	mappings repository.MappingRepository
	projects repository.ProjectRepository
	members  repository.TeamMemberRepository
	cache    *cache.Cache
}

// MasterDataDependencies bundles repositories.
type MasterDataDependencies struct {
	GroupRepo      repository.GroupRepository
	CategoryRepo   repository.CategoryRepository
	MappingRepo    repository.MappingRepository
	ProjectRepo    repository.ProjectRepository
	TeamMemberRepo repository.TeamMemberRepository
	Cache          *cache.Cache
}

// NewMasterDataService creates the service.
func NewMasterDataService(deps MasterDataDependencies) *MasterDataService {
	return &MasterDataService{
		groups:   deps.GroupRepo,
		cats:     deps.CategoryRepo,
		mappings: deps.MappingRepo,
		projects: deps.ProjectRepo,
		members:  deps.TeamMemberRepo,
		cache:    deps.Cache,
	}
}

func (s *MasterDataService) requireAdmin(actor *domain.User) error {
	if !authz.Can(actor, authz.RelNone, authz.ActionManageMaster) {
		return apperrors.NewForbidden("admin access required")
	}
	return nil
}

// ---- Business unit groups ----

func (s *MasterDataService) CreateGroup(ctx context.Context, actor *domain.User, group *domain.BusinessUnitGroup) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if strings.TrimSpace(group.Name) == "" {
		return apperrors.NewValidationError("group name required", nil)
	}
	group.Name = strings.TrimSpace(group.Name)
	if err := s.groups.Create(ctx, group); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *MasterDataService) UpdateGroup(ctx context.Context, actor *domain.User, group *domain.BusinessUnitGroup) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if strings.TrimSpace(group.Name) == "" {
		return apperrors.NewValidationError("group name required", nil)
	}
	if err := s.groups.Update(ctx, group); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("business unit group", map[string]any{"group_id": group.ID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *MasterDataService) ListGroups(ctx context.Context, activeOnly bool) ([]domain.BusinessUnitGroup, error) {
	groups, err := s.groups.List(ctx, activeOnly)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return groups, nil
}

func (s *MasterDataService) DeleteGroup(ctx context.Context, actor *domain.User, id int64) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if err := s.groups.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("business unit group", map[string]any{"group_id": id})
		}
		return apperrors.MapError(err)
	}
	s.cache.InvalidateMappings(ctx)
	return nil
}

// ---- Categories and subcategories ----

func (s *MasterDataService) CreateCategory(ctx context.Context, actor *domain.User, category *domain.Category) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if strings.TrimSpace(category.Name) == "" {
		return apperrors.NewValidationError("category name required", nil)
	}
	category.Name = strings.TrimSpace(category.Name)
	if err := s.cats.CreateCategory(ctx, category); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *MasterDataService) UpdateCategory(ctx context.Context, actor *domain.User, category *domain.Category) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if strings.TrimSpace(category.Name) == "" {
		return apperrors.NewValidationError("category name required", nil)
	}
	if err := s.cats.UpdateCategory(ctx, category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("category", map[string]any{"category_id": category.ID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *MasterDataService) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	categories, err := s.cats.ListCategories(ctx, activeOnly)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return categories, nil
}

func (s *MasterDataService) DeleteCategory(ctx context.Context, actor *domain.User, id int64) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if err := s.cats.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("category", map[string]any{"category_id": id})
		}
		return apperrors.MapError(err)
	}
	s.cache.InvalidateMappings(ctx)
	return nil
}

func (s *MasterDataService) CreateSubcategory(ctx context.Context, actor *domain.User, sub *domain.Subcategory) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if strings.TrimSpace(sub.Name) == "" || sub.CategoryID == 0 {
		return apperrors.NewValidationError("subcategory name and category required", nil)
	}
	sub.Name = strings.TrimSpace(sub.Name)
	if err := s.cats.CreateSubcategory(ctx, sub); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *MasterDataService) UpdateSubcategory(ctx context.Context, actor *domain.User, sub *domain.Subcategory) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if strings.TrimSpace(sub.Name) == "" || sub.CategoryID == 0 {
		return apperrors.NewValidationError("subcategory name and category required", nil)
	}
	if err := s.cats.UpdateSubcategory(ctx, sub); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("subcategory", map[string]any{"subcategory_id": sub.ID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *MasterDataService) ListSubcategories(ctx context.Context, categoryID int64) ([]domain.Subcategory, error) {
	subs, err := s.cats.ListSubcategories(ctx, categoryID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return subs, nil
}

func (s *MasterDataService) DeleteSubcategory(ctx context.Context, actor *domain.User, id int64) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if err := s.cats.DeleteSubcategory(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("subcategory", map[string]any{"subcategory_id": id})
		}
		return apperrors.MapError(err)
	}
	s.cache.InvalidateMappings(ctx)
	return nil
}

// ---- Classification mappings ----

func (s *MasterDataService) validateMapping(mapping *domain.ClassificationMapping) error {
	if mapping.GroupID == 0 || mapping.CategoryID == 0 {
		return apperrors.NewValidationError("mapping requires group and category", nil)
	}
	if mapping.DefaultSpocID == 0 {
		return apperrors.NewValidationError("mapping requires a default SPOC", nil)
	}
	if mapping.EstimatedDurationMinutes < 0 {
		return apperrors.NewValidationError("estimated duration must not be negative", nil)
	}
	return nil
}

func (s *MasterDataService) CreateMapping(ctx context.Context, actor *domain.User, mapping *domain.ClassificationMapping) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if err := s.validateMapping(mapping); err != nil {
		return err
	}
	if err := s.mappings.Create(ctx, mapping); err != nil {
		return apperrors.MapError(err)
	}
	s.cache.InvalidateMappings(ctx)
	return nil
}

func (s *MasterDataService) UpdateMapping(ctx context.Context, actor *domain.User, mapping *domain.ClassificationMapping) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if err := s.validateMapping(mapping); err != nil {
		return err
	}
	if err := s.mappings.Update(ctx, mapping); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("classification mapping", map[string]any{"mapping_id": mapping.ID})
		}
		return apperrors.MapError(err)
	}
	s.cache.InvalidateMappings(ctx)
	return nil
}

func (s *MasterDataService) ListMappings(ctx context.Context, groupID *int64) ([]domain.ClassificationMapping, error) {
	mappings, err := s.mappings.List(ctx, groupID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return mappings, nil
}

func (s *MasterDataService) DeleteMapping(ctx context.Context, actor *domain.User, id int64) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if err := s.mappings.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("classification mapping", map[string]any{"mapping_id": id})
		}
		return apperrors.MapError(err)
	}
	s.cache.InvalidateMappings(ctx)
	return nil
}

// ---- Projects and releases ----

func (s *MasterDataService) CreateProject(ctx context.Context, actor *domain.User, project *domain.Project) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if strings.TrimSpace(project.Name) == "" {
		return apperrors.NewValidationError("project name required", nil)
	}
	project.Name = strings.TrimSpace(project.Name)
	if err := s.projects.CreateProject(ctx, project); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *MasterDataService) UpdateProject(ctx context.Context, actor *domain.User, project *domain.Project) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if strings.TrimSpace(project.Name) == "" {
		return apperrors.NewValidationError("project name required", nil)
	}
	if err := s.projects.UpdateProject(ctx, project); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("project", map[string]any{"project_id": project.ID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *MasterDataService) ListProjects(ctx context.Context, activeOnly bool) ([]domain.Project, error) {
	projects, err := s.projects.ListProjects(ctx, activeOnly)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return projects, nil
}

func (s *MasterDataService) DeleteProject(ctx context.Context, actor *domain.User, id int64) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if err := s.projects.DeleteProject(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("project", map[string]any{"project_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *MasterDataService) CreateRelease(ctx context.Context, actor *domain.User, release *domain.ProductRelease) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if release.ProjectID == 0 || strings.TrimSpace(release.Version) == "" {
		return apperrors.NewValidationError("release requires project and version", nil)
	}
	release.Version = strings.TrimSpace(release.Version)
	if err := s.projects.CreateRelease(ctx, release); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *MasterDataService) ListReleases(ctx context.Context, projectID int64) ([]domain.ProductRelease, error) {
	releases, err := s.projects.ListReleases(ctx, projectID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return releases, nil
}

func (s *MasterDataService) DeleteRelease(ctx context.Context, actor *domain.User, id int64) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if err := s.projects.DeleteRelease(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product release", map[string]any{"release_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// ---- Group rosters ----

func (s *MasterDataService) AddTeamMember(ctx context.Context, actor *domain.User, groupID, userID int64) (*domain.TeamMember, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	member := &domain.TeamMember{GroupID: groupID, UserID: userID}
	if err := s.members.Add(ctx, member); err != nil {
		return nil, apperrors.MapError(err)
	}
	return member, nil
}

func (s *MasterDataService) RemoveTeamMember(ctx context.Context, actor *domain.User, groupID, userID int64) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if err := s.members.Remove(ctx, groupID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("team member", map[string]any{"group_id": groupID, "user_id": userID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *MasterDataService) ListTeamMembers(ctx context.Context, groupID int64) ([]domain.TeamMember, error) {
	members, err := s.members.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return members, nil
}

// ---- CSV bulk import / export ----

// RowFailure reports a single rejected CSV row.
type RowFailure struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportResult summarizes a bulk upload. Rows are inserted one by one; a bad
// row never aborts the rest of the file.
type ImportResult struct {
	Imported int          `json:"imported"`
	Failures []RowFailure `json:"failures"`
}

// CSV headers per entity. The first row of every upload must match.
var csvHeaders = map[string][]string{
	"groups":        {"name", "description", "is_active"},
	"categories":    {"name", "is_active"},
	"subcategories": {"category_id", "name", "is_active"},
	"mappings":      {"group_id", "category_id", "subcategory_id", "description_template", "estimated_duration_minutes", "default_spoc_id"},
}

// ImportCSV bulk-loads one master-data entity from a CSV stream.
func (s *MasterDataService) ImportCSV(ctx context.Context, actor *domain.User, entity string, r io.Reader) (*ImportResult, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	expected, ok := csvHeaders[entity]
	if !ok {
		return nil, apperrors.NewValidationError("unknown import entity", map[string]any{"entity": entity})
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewValidationError("empty or unreadable CSV", nil)
	}
	if !headerMatches(header, expected) {
		return nil, apperrors.NewValidationError("unexpected CSV header", map[string]any{
			"expected": strings.Join(expected, ","),
		})
	}

	result := &ImportResult{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Failures = append(result.Failures, RowFailure{Line: line, Reason: "malformed row"})
			continue
		}
		if err := s.importRow(ctx, entity, record); err != nil {
			result.Failures = append(result.Failures, RowFailure{Line: line, Reason: err.Error()})
			continue
		}
		result.Imported++
	}
	return result, nil
}

func headerMatches(got, expected []string) bool {
	if len(got) != len(expected) {
		return false
	}
	for i := range got {
		if !strings.EqualFold(strings.TrimSpace(got[i]), expected[i]) {
			return false
		}
	}
	return true
}

func (s *MasterDataService) importRow(ctx context.Context, entity string, record []string) error {
	switch entity {
	case "groups":
		group := &domain.BusinessUnitGroup{
			Name:        strings.TrimSpace(record[0]),
			Description: strings.TrimSpace(record[1]),
			IsActive:    parseCSVBool(record[2]),
		}
		if group.Name == "" {
			return errors.New("name required")
		}
		return s.groups.Create(ctx, group)
	case "categories":
		category := &domain.Category{
			Name:     strings.TrimSpace(record[0]),
			IsActive: parseCSVBool(record[1]),
		}
		if category.Name == "" {
			return errors.New("name required")
		}
		return s.cats.CreateCategory(ctx, category)
	case "subcategories":
		categoryID, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			return errors.New("invalid category_id")
		}
		sub := &domain.Subcategory{
			CategoryID: categoryID,
			Name:       strings.TrimSpace(record[1]),
			IsActive:   parseCSVBool(record[2]),
		}
		if sub.Name == "" {
			return errors.New("name required")
		}
		return s.cats.CreateSubcategory(ctx, sub)
	case "mappings":
		mapping, err := parseMappingRecord(record)
		if err != nil {
			return err
		}
		if err := s.mappings.Create(ctx, mapping); err != nil {
			return err
		}
		s.cache.InvalidateMappings(ctx)
		return nil
	}
	return fmt.Errorf("unknown entity %q", entity)
}

func parseMappingRecord(record []string) (*domain.ClassificationMapping, error) {
	groupID, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return nil, errors.New("invalid group_id")
	}
	categoryID, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
	if err != nil {
		return nil, errors.New("invalid category_id")
	}
	mapping := &domain.ClassificationMapping{
		GroupID:             groupID,
		CategoryID:          categoryID,
		DescriptionTemplate: strings.TrimSpace(record[3]),
	}
	if sub := strings.TrimSpace(record[2]); sub != "" {
		subID, err := strconv.ParseInt(sub, 10, 64)
		if err != nil {
			return nil, errors.New("invalid subcategory_id")
		}
		mapping.SubcategoryID = &subID
	}
	if dur := strings.TrimSpace(record[4]); dur != "" {
		minutes, err := strconv.Atoi(dur)
		if err != nil || minutes < 0 {
			return nil, errors.New("invalid estimated_duration_minutes")
		}
		mapping.EstimatedDurationMinutes = minutes
	}
	spocID, err := strconv.ParseInt(strings.TrimSpace(record[5]), 10, 64)
	if err != nil || spocID == 0 {
		return nil, errors.New("invalid default_spoc_id")
	}
	mapping.DefaultSpocID = spocID
	return mapping, nil
}

func parseCSVBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}

// ExportCSV streams one master-data entity as CSV.
func (s *MasterDataService) ExportCSV(ctx context.Context, actor *domain.User, entity string, w io.Writer) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	header, ok := csvHeaders[entity]
	if !ok {
		return apperrors.NewValidationError("unknown export entity", map[string]any{"entity": entity})
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return apperrors.NewInternalError(err)
	}

	switch entity {
	case "groups":
		groups, err := s.groups.List(ctx, false)
		if err != nil {
			return apperrors.MapError(err)
		}
		for _, group := range groups {
			if err := writer.Write([]string{group.Name, group.Description, strconv.FormatBool(group.IsActive)}); err != nil {
				return apperrors.NewInternalError(err)
			}
		}
	case "categories":
		categories, err := s.cats.ListCategories(ctx, false)
		if err != nil {
			return apperrors.MapError(err)
		}
		for _, category := range categories {
			if err := writer.Write([]string{category.Name, strconv.FormatBool(category.IsActive)}); err != nil {
				return apperrors.NewInternalError(err)
			}
		}
	case "subcategories":
		categories, err := s.cats.ListCategories(ctx, false)
		if err != nil {
			return apperrors.MapError(err)
		}
		for _, category := range categories {
			subs, err := s.cats.ListSubcategories(ctx, category.ID)
			if err != nil {
				return apperrors.MapError(err)
			}
			for _, sub := range subs {
				row := []string{strconv.FormatInt(sub.CategoryID, 10), sub.Name, strconv.FormatBool(sub.IsActive)}
				if err := writer.Write(row); err != nil {
					return apperrors.NewInternalError(err)
				}
			}
		}
	case "mappings":
		mappings, err := s.mappings.List(ctx, nil)
		if err != nil {
			return apperrors.MapError(err)
		}
		for _, mapping := range mappings {
			subcategory := ""
			if mapping.SubcategoryID != nil {
				subcategory = strconv.FormatInt(*mapping.SubcategoryID, 10)
			}
			row := []string{
				strconv.FormatInt(mapping.GroupID, 10),
				strconv.FormatInt(mapping.CategoryID, 10),
				subcategory,
				mapping.DescriptionTemplate,
				strconv.Itoa(mapping.EstimatedDurationMinutes),
				strconv.FormatInt(mapping.DefaultSpocID, 10),
			}
			if err := writer.Write(row); err != nil {
				return apperrors.NewInternalError(err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}
