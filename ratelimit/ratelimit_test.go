package ratelimit

import (
	"bizdesk-server/models"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := conn.AutoMigrate(&models.RateLimit{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return conn
}

func TestCheckBoundary(t *testing.T) {
	conn := openTestDB(t)

	// login allows 5 per minute
	for i := 1; i <= 4; i++ {
		res := Check(conn, "203.0.113.7", "login")
		if !res.Allowed {
			t.Fatalf("request %d should be allowed", i)
		}
	}

	fifth := Check(conn, "203.0.113.7", "login")
	if !fifth.Allowed {
		t.Fatal("5th request in a fresh window should be allowed")
	}
	if fifth.Remaining != 0 {
		t.Errorf("5th request should report remaining=0, got %d", fifth.Remaining)
	}

	sixth := Check(conn, "203.0.113.7", "login")
	if sixth.Allowed {
		t.Fatal("6th request should be denied")
	}
	if sixth.Remaining != 0 {
		t.Errorf("denied request should report remaining=0, got %d", sixth.Remaining)
	}
	if sixth.ResetAt.IsZero() {
		t.Error("denied request should report a reset time")
	}

	// the denied request must not grow the stored counter
	record := models.RateLimit{}
	if err := conn.Where("identifier = ? AND endpoint = ?", "203.0.113.7", "login").First(&record).Error; err != nil {
		t.Fatalf("failed to read counter: %v", err)
	}
	if record.RequestCount != 5 {
		t.Errorf("stored counter should stay at 5 after a denial, got %d", record.RequestCount)
	}
}

func TestCheckWindowExpiry(t *testing.T) {
	conn := openTestDB(t)

	policy := PolicyFor("login")
	stale := models.RateLimit{
		Identifier:   "203.0.113.8",
		Endpoint:     "login",
		RequestCount: policy.MaxRequests,
		WindowStart:  time.Now().Add(-policy.Window - time.Second),
	}
	if err := conn.Create(&stale).Error; err != nil {
		t.Fatalf("failed to seed stale window: %v", err)
	}

	res := Check(conn, "203.0.113.8", "login")
	if !res.Allowed {
		t.Fatal("request after window expiry should start a fresh window")
	}
	if res.Remaining != policy.MaxRequests-1 {
		t.Errorf("fresh window should report remaining=%d, got %d", policy.MaxRequests-1, res.Remaining)
	}
}

func TestCheckIsolatesEndpoints(t *testing.T) {
	conn := openTestDB(t)

	for i := 0; i < 3; i++ {
		Check(conn, "203.0.113.9", "signup")
	}
	if res := Check(conn, "203.0.113.9", "signup"); res.Allowed {
		t.Error("signup should deny the 4th request")
	}
	if res := Check(conn, "203.0.113.9", "login"); !res.Allowed {
		t.Error("login window should be independent of signup")
	}
	if res := Check(conn, "203.0.113.10", "signup"); !res.Allowed {
		t.Error("another identifier should get its own window")
	}
}

func TestCheckFailsOpenOnStoreError(t *testing.T) {
	conn := openTestDB(t)
	if err := conn.Migrator().DropTable(&models.RateLimit{}); err != nil {
		t.Fatalf("failed to drop table: %v", err)
	}

	result := Check(conn, "203.0.113.9", "login")
	if !result.Allowed {
		t.Error("a broken store must not deny requests")
	}
	if result.Remaining != -1 {
		t.Errorf("expected unknown remaining sentinel -1, got %d", result.Remaining)
	}
}

func TestPolicyFor(t *testing.T) {
	if p := PolicyFor("login"); p.MaxRequests != 5 {
		t.Errorf("login policy should allow 5, got %d", p.MaxRequests)
	}
	if p := PolicyFor("no-such-endpoint"); p != DefaultPolicy {
		t.Errorf("unknown endpoint should fall back to default, got %+v", p)
	}
}

func TestCleanup(t *testing.T) {
	conn := openTestDB(t)

	old := models.RateLimit{
		Identifier:   "203.0.113.11",
		Endpoint:     "login",
		RequestCount: 2,
		WindowStart:  time.Now().Add(-25 * time.Hour),
	}
	fresh := models.RateLimit{
		Identifier:   "203.0.113.11",
		Endpoint:     "clients",
		RequestCount: 1,
		WindowStart:  time.Now(),
	}
	if err := conn.Create(&old).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := conn.Create(&fresh).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if err := Cleanup(conn); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}

	var count int64
	if err := conn.Model(&models.RateLimit{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row after cleanup, got %d", count)
	}
}
