package handlers

import (
	"bizdesk-server/db"
	"bizdesk-server/models"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func deleteWithParam(t *testing.T, f handlerFixture, handler echo.HandlerFunc, param, value string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames(param)
	c.SetParamValues(value)
	c.Set("session", f.session)
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func countVisible(t *testing.T, model any) int64 {
	t.Helper()
	var count int64
	if err := db.Conn.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}

func TestDeleteClientCascadesToProjectsAndMaintenance(t *testing.T) {
	f := setupHandlerTest(t)
	project := seedProject(t, f, models.ProjectCompleted)
	m := models.Maintenance{MonthlyCost: 500000, PaymentDate: 15, Active: true, ProjectID: project.ID}
	if err := db.Conn.Create(&m).Error; err != nil {
		t.Fatalf("failed to create maintenance: %v", err)
	}

	rec := deleteWithParam(t, f, DeleteClientHandler, "client_id", itoa(f.client.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if n := countVisible(t, &models.Client{}); n != 0 {
		t.Errorf("expected client deleted, %d still visible", n)
	}
	if n := countVisible(t, &models.Project{}); n != 0 {
		t.Errorf("expected the client's projects deleted, %d still visible", n)
	}
	if n := countVisible(t, &models.Maintenance{}); n != 0 {
		t.Errorf("expected the projects' contracts deleted, %d still visible", n)
	}
}

func TestDeleteProjectCascadesToMaintenance(t *testing.T) {
	f := setupHandlerTest(t)
	project := seedProject(t, f, models.ProjectCompleted)
	m := models.Maintenance{MonthlyCost: 500000, PaymentDate: 15, Active: true, ProjectID: project.ID}
	if err := db.Conn.Create(&m).Error; err != nil {
		t.Fatalf("failed to create maintenance: %v", err)
	}

	rec := deleteWithParam(t, f, DeleteProjectHandler, "project_id", itoa(project.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if n := countVisible(t, &models.Maintenance{}); n != 0 {
		t.Errorf("expected the project's contracts deleted, %d still visible", n)
	}
	if n := countVisible(t, &models.Client{}); n != 1 {
		t.Errorf("the client must survive a project delete, %d visible", n)
	}
}

func TestCreateClientNormalizesNumber(t *testing.T) {
	f := setupHandlerTest(t)

	rec := invokeHandler(t, f, CreateClientHandler, http.MethodPost, "/v1/clients/",
		`{"name": "Sari", "wa": "0812-9999-8888"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var stored models.Client
	if err := db.Conn.Where("name = ?", "Sari").First(&stored).Error; err != nil {
		t.Fatalf("failed to load client: %v", err)
	}
	if stored.Wa != "6281299998888" {
		t.Errorf("expected canonical wa number, got %q", stored.Wa)
	}
}
