package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/portfolio-site/portfolio-api/internal/api/middleware"
	"github.com/portfolio-site/portfolio-api/internal/core/domain"
	"github.com/portfolio-site/portfolio-api/internal/core/ports"
)

type stubProjectService struct {
	listFn   func(ctx context.Context) ([]*domain.Project, error)
	getFn    func(ctx context.Context, id string) (*domain.Project, error)
	createFn func(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error)
	updateFn func(ctx context.Context, input ports.UpdateProjectInput) (*domain.Project, error)
	deleteFn func(ctx context.Context, input ports.DeleteProjectInput) error
	statsFn  func(ctx context.Context) (*domain.ProjectStats, error)
}

func (s *stubProjectService) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	return s.listFn(ctx)
}

func (s *stubProjectService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	return s.getFn(ctx, id)
}

func (s *stubProjectService) CreateProject(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	return s.createFn(ctx, input)
}

func (s *stubProjectService) UpdateProject(ctx context.Context, input ports.UpdateProjectInput) (*domain.Project, error) {
	return s.updateFn(ctx, input)
}

func (s *stubProjectService) DeleteProject(ctx context.Context, input ports.DeleteProjectInput) error {
	return s.deleteFn(ctx, input)
}

func (s *stubProjectService) Stats(ctx context.Context) (*domain.ProjectStats, error) {
	return s.statsFn(ctx)
}

var fixedTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func sampleProject(id int64, link *string) *domain.Project {
	return &domain.Project{
		ID: id, Title: "A", Description: "d", ProjectLink: link,
		CreatedAt: fixedTime, UpdatedAt: fixedTime, UserID: "u1",
	}
}

// newContext builds an echo context for method/target with an optional JSON
// body, path id and caller.
func newContext(method, target, body, id, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	if userID != "" {
		middleware.SetIdentity(c, &domain.Identity{UserID: userID, Source: domain.SourceCookie})
	}
	return c, rec
}

func TestProjectHandler_List(t *testing.T) {
	link := "https://x"
	stub := &stubProjectService{
		listFn: func(context.Context) ([]*domain.Project, error) {
			return []*domain.Project{sampleProject(2, &link), sampleProject(1, nil)}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/projects", "", "", "")

	if err := NewProjectHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(resp))
	}
	if resp[0]["status"] != "published" || resp[1]["status"] != "draft" {
		t.Fatalf("unexpected statuses: %v / %v", resp[0]["status"], resp[1]["status"])
	}
	if resp[0]["projectLink"] != "https://x" || resp[0]["userId"] != "u1" {
		t.Fatalf("unexpected payload: %+v", resp[0])
	}
	if v, ok := resp[1]["imageUrl"]; !ok || v != nil {
		t.Fatalf("expected imageUrl to be present and null, got %v (present=%v)", v, ok)
	}
	if list, ok := resp[1]["technologyList"].([]any); !ok || len(list) != 0 {
		t.Fatalf("expected empty technologyList, got %v", resp[1]["technologyList"])
	}
}

func TestProjectHandler_Get_TechnologyList(t *testing.T) {
	techs := "Go, React,, PostgreSQL"
	stub := &stubProjectService{
		getFn: func(context.Context, string) (*domain.Project, error) {
			p := sampleProject(1, nil)
			p.Technologies = &techs
			return p, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/projects/1", "", "1", "")

	if err := NewProjectHandler(stub).Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Technologies   string   `json:"technologies"`
		TechnologyList []string `json:"technologyList"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Technologies != techs {
		t.Fatalf("expected raw technologies kept, got %q", resp.Technologies)
	}
	want := []string{"Go", "React", "PostgreSQL"}
	if strings.Join(resp.TechnologyList, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %v, got %v", want, resp.TechnologyList)
	}
}

func TestProjectHandler_List_Empty(t *testing.T) {
	stub := &stubProjectService{
		listFn: func(context.Context) ([]*domain.Project, error) { return nil, nil },
	}
	c, rec := newContext(http.MethodGet, "/projects", "", "", "")

	if err := NewProjectHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty JSON array, got %s", rec.Body.String())
	}
}

func TestProjectHandler_Get_PassesRawID(t *testing.T) {
	stub := &stubProjectService{
		getFn: func(_ context.Context, id string) (*domain.Project, error) {
			if id != "abc" {
				t.Fatalf("expected raw id, got %q", id)
			}
			return nil, domain.ErrInvalidProjectID
		},
	}
	c, _ := newContext(http.MethodGet, "/projects/abc", "", "abc", "")

	if err := NewProjectHandler(stub).Get(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestProjectHandler_Create_Success(t *testing.T) {
	stub := &stubProjectService{
		createFn: func(_ context.Context, in ports.CreateProjectInput) (*domain.Project, error) {
			if in.UserID != "u1" || in.Title != "A" || in.Description != "d" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Technologies == nil || *in.Technologies != "Go,React" || in.ImageURL != nil {
				t.Fatalf("unexpected optional fields: %+v", in)
			}
			return sampleProject(1, nil), nil
		},
	}
	c, rec := newContext(http.MethodPost, "/projects",
		`{"title":"A","description":"d","technologies":"Go,React"}`, "", "u1")

	if err := NewProjectHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != float64(1) || resp["status"] != "draft" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp["createdAt"] != resp["updatedAt"] {
		t.Fatalf("expected createdAt == updatedAt, got %v / %v", resp["createdAt"], resp["updatedAt"])
	}
}

func TestProjectHandler_Create_Anonymous(t *testing.T) {
	stub := &stubProjectService{}
	// Invalid payload too: the missing session must win.
	c, _ := newContext(http.MethodPost, "/projects", `{"title":""}`, "", "")

	if err := NewProjectHandler(stub).Create(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestProjectHandler_Create_Invalid(t *testing.T) {
	stub := &stubProjectService{}
	cases := map[string]string{
		"missing title":       `{"description":"d"}`,
		"missing description": `{"title":"A"}`,
		"title too long":      `{"title":"` + strings.Repeat("x", 256) + `","description":"d"}`,
		"link too long":       `{"title":"A","description":"d","projectLink":"` + strings.Repeat("x", 501) + `"}`,
		"malformed json":      `{"title":`,
		"wrong type":          `{"title":5,"description":"d"}`,
	}
	for name, body := range cases {
		c, _ := newContext(http.MethodPost, "/projects", body, "", "u1")
		if err := NewProjectHandler(stub).Create(c); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestProjectHandler_Create_ResolverFailure(t *testing.T) {
	stub := &stubProjectService{}
	c, _ := newContext(http.MethodPost, "/projects", `{"title":"A","description":"d"}`, "", "")
	c.Set("auth_error", errors.New("session store down"))

	err := NewProjectHandler(stub).Create(c)
	if err == nil || errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected resolver failure, got %v", err)
	}
}

func TestProjectHandler_ResolverFailure_IDCheckedFirst(t *testing.T) {
	stub := &stubProjectService{}
	storeDown := errors.New("session store down")

	c, _ := newContext(http.MethodPut, "/projects/abc", `{"title":"B"}`, "abc", "")
	c.Set("auth_error", storeDown)
	if err := NewProjectHandler(stub).Update(c); !errors.Is(err, domain.ErrInvalidProjectID) {
		t.Fatalf("update: expected ErrInvalidProjectID, got %v", err)
	}

	c, _ = newContext(http.MethodDelete, "/projects/abc", "", "abc", "")
	c.Set("auth_error", storeDown)
	if err := NewProjectHandler(stub).Delete(c); !errors.Is(err, domain.ErrInvalidProjectID) {
		t.Fatalf("delete: expected ErrInvalidProjectID, got %v", err)
	}

	c, _ = newContext(http.MethodDelete, "/projects/1", "", "1", "")
	c.Set("auth_error", storeDown)
	if err := NewProjectHandler(stub).Delete(c); !errors.Is(err, storeDown) {
		t.Fatalf("delete: expected resolver failure, got %v", err)
	}
}

func TestProjectHandler_Update_PartialPatch(t *testing.T) {
	link := "https://x"
	stub := &stubProjectService{
		updateFn: func(_ context.Context, in ports.UpdateProjectInput) (*domain.Project, error) {
			if in.ID != "1" || in.UserID != "u1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			p := in.Patch
			if !p.ProjectLink.Set || p.ProjectLink.Value == nil || *p.ProjectLink.Value != "https://x" {
				t.Fatalf("expected projectLink set, got %+v", p.ProjectLink)
			}
			if !p.ImageURL.Set || p.ImageURL.Value != nil {
				t.Fatalf("expected imageUrl explicitly null, got %+v", p.ImageURL)
			}
			if p.Title.Set || p.Description.Set || p.Technologies.Set {
				t.Fatalf("absent fields must stay unset: %+v", p)
			}
			updated := sampleProject(1, &link)
			updated.UpdatedAt = fixedTime.Add(time.Second)
			return updated, nil
		},
	}
	c, rec := newContext(http.MethodPut, "/projects/1", `{"projectLink":"https://x","imageUrl":null}`, "1", "u1")

	if err := NewProjectHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "published" {
		t.Fatalf("expected published, got %v", resp["status"])
	}
}

func TestProjectHandler_Update_MalformedBodyOrdering(t *testing.T) {
	stub := &stubProjectService{}

	c, _ := newContext(http.MethodPut, "/projects/abc", `{`, "abc", "")
	if err := NewProjectHandler(stub).Update(c); !errors.Is(err, domain.ErrInvalidProjectID) {
		t.Fatalf("expected ErrInvalidProjectID, got %v", err)
	}

	c, _ = newContext(http.MethodPut, "/projects/1", `{`, "1", "")
	if err := NewProjectHandler(stub).Update(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	c, _ = newContext(http.MethodPut, "/projects/1", `{`, "1", "u1")
	if err := NewProjectHandler(stub).Update(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestProjectHandler_Update_NotOwner(t *testing.T) {
	stub := &stubProjectService{
		updateFn: func(context.Context, ports.UpdateProjectInput) (*domain.Project, error) {
			return nil, domain.ErrProjectNotFound
		},
	}
	c, _ := newContext(http.MethodPut, "/projects/1", `{"title":"B"}`, "1", "u2")

	if err := NewProjectHandler(stub).Update(c); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectHandler_Delete(t *testing.T) {
	stub := &stubProjectService{
		deleteFn: func(_ context.Context, in ports.DeleteProjectInput) error {
			if in.ID != "1" || in.UserID != "u1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return nil
		},
	}
	c, rec := newContext(http.MethodDelete, "/projects/1", "", "1", "u1")

	if err := NewProjectHandler(stub).Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "project deleted successfully" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestProjectHandler_Delete_Anonymous(t *testing.T) {
	stub := &stubProjectService{
		deleteFn: func(_ context.Context, in ports.DeleteProjectInput) error {
			if in.UserID != "" {
				t.Fatalf("expected anonymous input, got %+v", in)
			}
			return domain.ErrUnauthorized
		},
	}
	c, rec := newContext(http.MethodDelete, "/projects/1", "", "1", "")

	if err := NewProjectHandler(stub).Delete(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("handler must not write a body on error")
	}
}

func TestProjectHandler_Stats(t *testing.T) {
	stub := &stubProjectService{
		statsFn: func(context.Context) (*domain.ProjectStats, error) {
			return &domain.ProjectStats{Total: 4, Published: 2, Recent: 1}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/admin/stats", "", "", "u1")

	if err := NewProjectHandler(stub).Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp statsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp != (statsResponse{Total: 4, Published: 2, Recent: 1}) {
		t.Fatalf("unexpected stats: %+v", resp)
	}
}
