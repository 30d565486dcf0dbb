package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/api/dto"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/auth"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/service"
	apperrors "github.com/weebHarsh/ticketing-portal-sub000/pkg/util"
)

// MasterDataHandler exposes the reference-data admin endpoints plus the
// read-only lookups the ticket form needs.
type MasterDataHandler struct {
	master *service.MasterDataService
}

// NewMasterDataHandler constructs handler.
func NewMasterDataHandler(master *service.MasterDataService) *MasterDataHandler {
	return &MasterDataHandler{master: master}
}

func boolOrDefault(val *bool, def bool) bool {
	if val == nil {
		return def
	}
	return *val
}

// ---- Groups ----

// CreateGroup POST /admin/master/groups.
func (h *MasterDataHandler) CreateGroup(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	var req dto.GroupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	group := &domain.BusinessUnitGroup{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    boolOrDefault(req.IsActive, true),
	}
	if err := h.master.CreateGroup(c.Context(), actor, group); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": group})
}

// UpdateGroup PUT /admin/master/groups/:id.
func (h *MasterDataHandler) UpdateGroup(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.GroupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	group := &domain.BusinessUnitGroup{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    boolOrDefault(req.IsActive, true),
	}
	if err := h.master.UpdateGroup(c.Context(), actor, group); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": group})
}

// ListGroups GET /master/groups.
func (h *MasterDataHandler) ListGroups(c *fiber.Ctx) error {
	groups, err := h.master.ListGroups(c.Context(), c.QueryBool("active_only"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": groups})
}

// DeleteGroup DELETE /admin/master/groups/:id.
func (h *MasterDataHandler) DeleteGroup(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.master.DeleteGroup(c.Context(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ---- Categories ----

// CreateCategory POST /admin/master/categories.
func (h *MasterDataHandler) CreateCategory(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category := &domain.Category{Name: req.Name, IsActive: boolOrDefault(req.IsActive, true)}
	if err := h.master.CreateCategory(c.Context(), actor, category); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": category})
}

// UpdateCategory PUT /admin/master/categories/:id.
func (h *MasterDataHandler) UpdateCategory(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category := &domain.Category{ID: id, Name: req.Name, IsActive: boolOrDefault(req.IsActive, true)}
	if err := h.master.UpdateCategory(c.Context(), actor, category); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": category})
}

// ListCategories GET /master/categories.
func (h *MasterDataHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.master.ListCategories(c.Context(), c.QueryBool("active_only"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": categories})
}

// DeleteCategory DELETE /admin/master/categories/:id.
func (h *MasterDataHandler) DeleteCategory(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.master.DeleteCategory(c.Context(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ---- Subcategories ----

// CreateSubcategory POST /admin/master/subcategories.
func (h *MasterDataHandler) CreateSubcategory(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	var req dto.SubcategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	sub := &domain.Subcategory{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		IsActive:   boolOrDefault(req.IsActive, true),
	}
	if err := h.master.CreateSubcategory(c.Context(), actor, sub); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": sub})
}

// UpdateSubcategory PUT /admin/master/subcategories/:id.
func (h *MasterDataHandler) UpdateSubcategory(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.SubcategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	sub := &domain.Subcategory{
		ID:         id,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		IsActive:   boolOrDefault(req.IsActive, true),
	}
	if err := h.master.UpdateSubcategory(c.Context(), actor, sub); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sub})
}

// ListSubcategories GET /master/categories/:id/subcategories.
func (h *MasterDataHandler) ListSubcategories(c *fiber.Ctx) error {
	categoryID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	subs, err := h.master.ListSubcategories(c.Context(), categoryID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": subs})
}

// DeleteSubcategory DELETE /admin/master/subcategories/:id.
func (h *MasterDataHandler) DeleteSubcategory(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.master.DeleteSubcategory(c.Context(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ---- Classification mappings ----

// CreateMapping POST /admin/master/mappings.
func (h *MasterDataHandler) CreateMapping(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	var req dto.MappingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	mapping := mappingFromRequest(0, req)
	if err := h.master.CreateMapping(c.Context(), actor, mapping); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": mapping})
}

// UpdateMapping PUT /admin/master/mappings/:id.
func (h *MasterDataHandler) UpdateMapping(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.MappingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	mapping := mappingFromRequest(id, req)
	if err := h.master.UpdateMapping(c.Context(), actor, mapping); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": mapping})
}

// ListMappings GET /admin/master/mappings.
func (h *MasterDataHandler) ListMappings(c *fiber.Ctx) error {
	groupID := parseOptionalID(c.Query("group_id"))
	mappings, err := h.master.ListMappings(c.Context(), groupID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": mappings})
}

// DeleteMapping DELETE /admin/master/mappings/:id.
func (h *MasterDataHandler) DeleteMapping(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.master.DeleteMapping(c.Context(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func mappingFromRequest(id int64, req dto.MappingRequest) *domain.ClassificationMapping {
	return &domain.ClassificationMapping{
		ID:                       id,
		GroupID:                  req.GroupID,
		CategoryID:               req.CategoryID,
		SubcategoryID:            req.SubcategoryID,
		DescriptionTemplate:      req.DescriptionTemplate,
		EstimatedDurationMinutes: req.EstimatedDurationMinutes,
		DefaultSpocID:            req.DefaultSpocID,
	}
}

// ---- Projects and releases ----

// CreateProject POST /admin/master/projects.
func (h *MasterDataHandler) CreateProject(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	project := &domain.Project{Name: req.Name, IsActive: boolOrDefault(req.IsActive, true)}
	if err := h.master.CreateProject(c.Context(), actor, project); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": project})
}

// UpdateProject PUT /admin/master/projects/:id.
func (h *MasterDataHandler) UpdateProject(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	project := &domain.Project{ID: id, Name: req.Name, IsActive: boolOrDefault(req.IsActive, true)}
	if err := h.master.UpdateProject(c.Context(), actor, project); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": project})
}

// ListProjects GET /master/projects.
func (h *MasterDataHandler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.master.ListProjects(c.Context(), c.QueryBool("active_only"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": projects})
}

// DeleteProject DELETE /admin/master/projects/:id.
func (h *MasterDataHandler) DeleteProject(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.master.DeleteProject(c.Context(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// CreateRelease POST /admin/master/releases.
func (h *MasterDataHandler) CreateRelease(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	var req dto.ReleaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	release := &domain.ProductRelease{
		ProjectID:   req.ProjectID,
		Version:     req.Version,
		ReleaseDate: req.ReleaseDate,
	}
	if err := h.master.CreateRelease(c.Context(), actor, release); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": release})
}

// ListReleases GET /master/projects/:id/releases.
func (h *MasterDataHandler) ListReleases(c *fiber.Ctx) error {
	projectID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	releases, err := h.master.ListReleases(c.Context(), projectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": releases})
}

// DeleteRelease DELETE /admin/master/releases/:id.
func (h *MasterDataHandler) DeleteRelease(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.master.DeleteRelease(c.Context(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ---- Group rosters ----

// AddTeamMember POST /admin/master/team-members.
func (h *MasterDataHandler) AddTeamMember(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	var req dto.TeamMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	member, err := h.master.AddTeamMember(c.Context(), actor, req.GroupID, req.UserID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": member})
}

// RemoveTeamMember DELETE /admin/master/groups/:id/members/:userID.
func (h *MasterDataHandler) RemoveTeamMember(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	groupID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	userID, err := parseID(c, "userID")
	if err != nil {
		return err
	}
	if err := h.master.RemoveTeamMember(c.Context(), actor, groupID, userID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListTeamMembers GET /master/groups/:id/members.
func (h *MasterDataHandler) ListTeamMembers(c *fiber.Ctx) error {
	groupID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	members, err := h.master.ListTeamMembers(c.Context(), groupID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": members})
}

// ---- CSV import / export ----

// ImportCSV POST /admin/master/:entity/import.
func (h *MasterDataHandler) ImportCSV(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	entity := c.Params("entity")
	result, err := h.master.ImportCSV(c.Context(), actor, entity, bytes.NewReader(c.Body()))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}

// ExportCSV GET /admin/master/:entity/export.
func (h *MasterDataHandler) ExportCSV(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	entity := c.Params("entity")
	var buf bytes.Buffer
	if err := h.master.ExportCSV(c.Context(), actor, entity, &buf); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.csv"`, entity))
	return c.Send(buf.Bytes())
}
