package handlers

import (
	"bizdesk-server/db"
	"bizdesk-server/models"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type handlerFixture struct {
	session models.Session
	client  models.Client
}

func setupHandlerTest(t *testing.T) handlerFixture {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := conn.AutoMigrate(models.AllModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	db.Conn = conn

	user := models.User{Email: "owner@example.com", Password: "irrelevant"}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	exp := time.Now().Add(time.Hour)
	session := models.Session{Token: "st_test", UserID: user.ID, ExpiresAt: &exp}
	if err := conn.Create(&session).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	client := models.Client{Name: "Budi Santoso", Wa: "6281234567890", UserID: user.ID}
	if err := conn.Create(&client).Error; err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return handlerFixture{session: session, client: client}
}

func seedProject(t *testing.T, f handlerFixture, status models.ProjectStatus) models.Project {
	t.Helper()
	project := models.Project{
		Name:          "Toko Online",
		Value:         5000000,
		ProjectStatus: status,
		Date:          time.Now(),
		UserID:        f.session.UserID,
		ClientID:      f.client.ID,
	}
	if err := db.Conn.Create(&project).Error; err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return project
}

func invokeHandler(t *testing.T, f handlerFixture, handler echo.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session", f.session)
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestCreateMaintenanceRequiresCompletedProject(t *testing.T) {
	f := setupHandlerTest(t)
	project := seedProject(t, f, models.ProjectInProgress)

	body := `{"project_id": ` + itoa(project.ID) + `, "monthly_cost": 500000, "payment_date": 15}`
	rec := invokeHandler(t, f, CreateMaintenanceHandler, http.MethodPost, "/v1/maintenance/", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for in-progress project, got %d", rec.Code)
	}
}

func TestCreateMaintenanceForCompletedProject(t *testing.T) {
	f := setupHandlerTest(t)
	project := seedProject(t, f, models.ProjectCompleted)

	body := `{"project_id": ` + itoa(project.ID) + `, "initial_cost": 1000000, "monthly_cost": 500000, "payment_date": 15}`
	rec := invokeHandler(t, f, CreateMaintenanceHandler, http.MethodPost, "/v1/maintenance/", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var details MaintenanceDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &details); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !details.Active {
		t.Error("expected new contract to default to active")
	}
	if details.ClientName != "Budi Santoso" {
		t.Errorf("expected joined client name, got %q", details.ClientName)
	}
	if details.LastReminderSent != nil {
		t.Errorf("expected last_reminder_sent to start null, got %v", *details.LastReminderSent)
	}
}

func TestCreateMaintenanceRejectsBadPaymentDate(t *testing.T) {
	f := setupHandlerTest(t)
	project := seedProject(t, f, models.ProjectCompleted)

	body := `{"project_id": ` + itoa(project.ID) + `, "monthly_cost": 500000, "payment_date": 32}`
	rec := invokeHandler(t, f, CreateMaintenanceHandler, http.MethodPost, "/v1/maintenance/", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for payment_date 32, got %d", rec.Code)
	}
}

func TestUpdateMaintenanceAllowsZeroCost(t *testing.T) {
	f := setupHandlerTest(t)
	project := seedProject(t, f, models.ProjectCompleted)
	m := models.Maintenance{InitialCost: 1000000, MonthlyCost: 500000, PaymentDate: 15, Active: true, ProjectID: project.ID}
	if err := db.Conn.Create(&m).Error; err != nil {
		t.Fatalf("failed to create maintenance: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/v1/maintenance/1",
		strings.NewReader(`{"initial_cost": 0, "monthly_cost": 0}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("maintenance_id")
	c.SetParamValues(itoa(m.ID))
	c.Set("session", f.session)
	if err := UpdateMaintenanceHandler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var stored models.Maintenance
	if err := db.Conn.First(&stored, m.ID).Error; err != nil {
		t.Fatalf("failed to reload maintenance: %v", err)
	}
	if stored.InitialCost != 0 || stored.MonthlyCost != 0 {
		t.Errorf("expected zero costs stored, got initial=%v monthly=%v", stored.InitialCost, stored.MonthlyCost)
	}
}

func TestCreateMaintenanceRejectsNegativeCost(t *testing.T) {
	f := setupHandlerTest(t)
	project := seedProject(t, f, models.ProjectCompleted)

	body := `{"project_id": ` + itoa(project.ID) + `, "monthly_cost": -1, "payment_date": 15}`
	rec := invokeHandler(t, f, CreateMaintenanceHandler, http.MethodPost, "/v1/maintenance/", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for negative cost, got %d", rec.Code)
	}
}

func TestUpdateMaintenanceCannotTouchReminderTimestamp(t *testing.T) {
	f := setupHandlerTest(t)
	project := seedProject(t, f, models.ProjectCompleted)
	m := models.Maintenance{MonthlyCost: 500000, PaymentDate: 15, Active: true, ProjectID: project.ID}
	if err := db.Conn.Create(&m).Error; err != nil {
		t.Fatalf("failed to create maintenance: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/v1/maintenance/1",
		strings.NewReader(`{"monthly_cost": 750000, "last_reminder_sent": "2023-10-15T02:00:00Z"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("maintenance_id")
	c.SetParamValues(itoa(m.ID))
	c.Set("session", f.session)
	if err := UpdateMaintenanceHandler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var stored models.Maintenance
	if err := db.Conn.First(&stored, m.ID).Error; err != nil {
		t.Fatalf("failed to reload maintenance: %v", err)
	}
	if stored.MonthlyCost != 750000 {
		t.Errorf("expected monthly cost 750000, got %v", stored.MonthlyCost)
	}
	if stored.LastReminderSent != nil {
		t.Error("expected last_reminder_sent to remain untouched by the update API")
	}
}

func TestMaintenanceOwnershipEnforced(t *testing.T) {
	f := setupHandlerTest(t)
	project := seedProject(t, f, models.ProjectCompleted)
	m := models.Maintenance{MonthlyCost: 500000, PaymentDate: 15, Active: true, ProjectID: project.ID}
	if err := db.Conn.Create(&m).Error; err != nil {
		t.Fatalf("failed to create maintenance: %v", err)
	}

	other := models.User{Email: "intruder@example.com", Password: "irrelevant"}
	if err := db.Conn.Create(&other).Error; err != nil {
		t.Fatalf("failed to create second user: %v", err)
	}
	exp := time.Now().Add(time.Hour)
	otherSession := models.Session{Token: "st_other", UserID: other.ID, ExpiresAt: &exp}
	if err := db.Conn.Create(&otherSession).Error; err != nil {
		t.Fatalf("failed to create second session: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/maintenance/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("maintenance_id")
	c.SetParamValues(itoa(m.ID))
	c.Set("session", otherSession)
	if err := DeleteMaintenanceHandler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for another user's contract, got %d", rec.Code)
	}
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
