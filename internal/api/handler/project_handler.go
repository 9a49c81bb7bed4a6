package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/portfolio-site/portfolio-api/internal/api/metrics"
	"github.com/portfolio-site/portfolio-api/internal/core/domain"
	"github.com/portfolio-site/portfolio-api/internal/core/ports"
)

// ProjectHandler handles HTTP requests for portfolio projects.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// List handles GET /projects.
//
// @Summary      List projects
// @Description  Returns every project, newest first.
// @Tags         projects
// @Produce      json
// @Success      200  {array}   projectResponse
// @Failure      500  {object}  errorResponse
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.service.ListProjects(c.Request().Context())
	metrics.ObserveProjectOperation("list", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponses(projects))
}

// Get handles GET /projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  projectResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.service.GetProject(c.Request().Context(), c.Param("id"))
	metrics.ObserveProjectOperation("get", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// Create handles POST /projects.
//
// @Summary      Create a project
// @Description  The caller becomes the owner of the new project.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project"
// @Success      201   {object}  projectResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	project, err := h.create(c)
	metrics.ObserveProjectOperation("create", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProjectResponse(project))
}

// Update handles PUT /projects/:id.
//
// @Summary      Update a project
// @Description  Partial update. Omitted fields are kept; null clears imageUrl, projectLink or technologies.
// @Description  A project owned by someone else is reported as not found.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Security     BearerAuth
// @Param        id    path      int                   true  "Project ID"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  projectResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	project, err := h.update(c)
	metrics.ObserveProjectOperation("update", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// Delete handles DELETE /projects/:id.
//
// @Summary      Delete a project
// @Description  A project owned by someone else is reported as not found.
// @Tags         projects
// @Produce      json
// @Security     SessionCookie
// @Security     BearerAuth
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	userID, err := ownerCaller(c)
	if err == nil {
		err = h.service.DeleteProject(c.Request().Context(), ports.DeleteProjectInput{
			ID:     c.Param("id"),
			UserID: userID,
		})
	}
	metrics.ObserveProjectOperation("delete", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "project deleted successfully"})
}

// Stats handles GET /admin/stats.
//
// @Summary      Dashboard statistics
// @Description  Total projects, published projects (with a link) and projects created in the last 7 days.
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /admin/stats [get]
func (h *ProjectHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	metrics.ObserveProjectOperation("stats", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStatsResponse(stats))
}

func (h *ProjectHandler) create(c echo.Context) (*domain.Project, error) {
	userID, err := ctxCaller(c)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return nil, bindFailure(c, userID, false)
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}

	return h.service.CreateProject(c.Request().Context(), toCreateInput(userID, req))
}

func (h *ProjectHandler) update(c echo.Context) (*domain.Project, error) {
	userID, err := ownerCaller(c)
	if err != nil {
		return nil, err
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return nil, bindFailure(c, userID, true)
	}

	return h.service.UpdateProject(c.Request().Context(), ports.UpdateProjectInput{
		ID:     c.Param("id"),
		UserID: userID,
		Patch:  toProjectPatch(req),
	})
}
