package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	appsvc "raidboard/internal/app"
	"raidboard/internal/index"
	"raidboard/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *appsvc.AdminService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	raids := store.NewMemoryRaidStore(time.Hour)
	rooms := store.NewMemoryKeyedSet()
	admin := appsvc.NewAdminService("", "secret", time.Hour, raids, rooms, nil)

	bosses := index.New("bosses")
	path := filepath.Join(t.TempDir(), "bosses.json")
	if err := os.WriteFile(path, []byte(`["Mewtwo", "Rayquaza"]`), 0o644); err != nil {
		t.Fatalf("write bosses source: %v", err)
	}
	if err := bosses.Load(context.Background(), path); err != nil {
		t.Fatalf("load bosses: %v", err)
	}

	h := NewAdminHandler(admin, bosses, index.New("gyms"))
	router := gin.New()
	router.GET("/rooms/:id", h.GetRoom)
	router.GET("/entities", h.LookupEntity)
	return router, admin
}

func doGet(t *testing.T, router *gin.Engine, url string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	router.ServeHTTP(rec, req)

	var body struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, body.Data
}

func TestGetRoomReportsEnablement(t *testing.T) {
	router, admin := newTestRouter(t)
	if err := admin.EnableRoom(context.Background(), -200); err != nil {
		t.Fatalf("EnableRoom err: %v", err)
	}

	rec, data := doGet(t, router, "/rooms/-200")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusOK)
	}
	if enabled, _ := data["enabled"].(bool); !enabled {
		t.Fatalf("enabled room reported as disabled: %+v", data)
	}

	rec, data = doGet(t, router, "/rooms/-201")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusOK)
	}
	if enabled, _ := data["enabled"].(bool); enabled {
		t.Fatalf("unknown room reported as enabled: %+v", data)
	}

	rec, _ = doGet(t, router, "/rooms/not-a-number")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestLookupEntityResolvesMisspelling(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, data := doGet(t, router, "/entities?kind=boss&q=mewtwoo")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusOK)
	}
	if match, _ := data["match"].(string); match != "Mewtwo" {
		t.Fatalf("match: got %+v want Mewtwo", data["match"])
	}

	rec, _ = doGet(t, router, "/entities?kind=town&q=mewtwo")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}
