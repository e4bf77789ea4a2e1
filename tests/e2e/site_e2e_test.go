package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/foresight/internal/db"
	"github.com/foresight/internal/router"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const baseURL = "http://example.test"

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(handler http.Handler, withJar bool) *localClient {
	var jar http.CookieJar
	if withJar {
		if j, err := cookiejar.New(nil); err == nil {
			jar = j
		}
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) (*http.Response, error) {
	if c.jar != nil {
		for _, cookie := range c.jar.Cookies(req.URL) {
			req.AddCookie(cookie)
		}
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	if c.jar != nil {
		c.jar.SetCookies(req.URL, resp.Cookies())
	}
	return resp, nil
}

func (c *localClient) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, baseURL+path, nil)
	return c.send(t, req)
}

func (c *localClient) postForm(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPost, baseURL+path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.send(t, req)
}

func (c *localClient) sendJSON(t *testing.T, method, path string, payload interface{}) (*http.Response, string) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to encode payload: %v", err)
	}
	req, _ := http.NewRequest(method, baseURL+path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return c.send(t, req)
}

func (c *localClient) send(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", req.Method, req.URL.Path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return resp, string(raw)
}

type pageJSON struct {
	ID        uint   `json:"ID"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Content   string `json:"content"`
	Rank      int    `json:"rank"`
	Published bool   `json:"published"`
}

func setupSite(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.User{}, &db.Profile{}, &db.Page{}, &db.SiteSetting{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	db.DB = gdb

	pages := []db.Page{
		{Slug: "summary", Title: "Summary", Rank: 1, Published: true,
			Content: "## Summary\n\nThe short version."},
		{Slug: "research", Title: "Research", Rank: 2, Published: true,
			Content: "## Research\n\nThe long version."},
		{Slug: "compute", Title: "Compute Forecast", Rank: 3, Published: false,
			Content: "## Compute\n\nStill a draft."},
	}
	for i := range pages {
		if err := gdb.Create(&pages[i]).Error; err != nil {
			t.Fatalf("failed to seed page: %v", err)
		}
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return router.SetupRouter(router.Options{
		SessionSecret:  "test-session-secret",
		UploadDir:      t.TempDir(),
		UploadURLPath:  "/uploads",
		EnableDevSeed:  true,
		AllowedOrigins: []string{"*"},
	})
}

func signUp(t *testing.T, client *localClient, email, password string) {
	t.Helper()
	resp, body := client.postForm(t, "/auth/register", url.Values{
		"email":    {email},
		"password": {password},
	})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("sign up failed with status %d: %s", resp.StatusCode, body)
	}
}

func signIn(t *testing.T, client *localClient, email, password string) {
	t.Helper()
	resp, body := client.postForm(t, "/auth/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("sign in failed with status %d: %s", resp.StatusCode, body)
	}
}

func fetchPages(t *testing.T, client *localClient) []pageJSON {
	t.Helper()
	resp, body := client.get(t, "/editor/api/pages")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("page list failed with status %d: %s", resp.StatusCode, body)
	}
	var payload struct {
		Pages []pageJSON `json:"pages"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("failed to decode page list: %v", err)
	}
	return payload.Pages
}

func pageBySlug(t *testing.T, pages []pageJSON, slug string) pageJSON {
	t.Helper()
	for _, page := range pages {
		if page.Slug == slug {
			return page
		}
	}
	t.Fatalf("page %q not found in list", slug)
	return pageJSON{}
}

func TestReaderShowsPublishedSectionsInRankOrder(t *testing.T) {
	handler := setupSite(t)
	public := newLocalClient(handler, false)

	resp, body := public.get(t, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	summaryAt := strings.Index(body, `id="summary"`)
	researchAt := strings.Index(body, `id="research"`)
	if summaryAt < 0 || researchAt < 0 {
		t.Fatalf("expected both published sections, got summary=%d research=%d", summaryAt, researchAt)
	}
	if summaryAt > researchAt {
		t.Fatal("expected Summary section before Research section")
	}
	if strings.Contains(body, `id="compute"`) {
		t.Fatal("draft section must not be rendered on the reader view")
	}
}

func TestAuthFlow(t *testing.T) {
	handler := setupSite(t)

	editor := newLocalClient(handler, true)
	signUp(t, editor, "editor@example.com", "pass-123")

	resp, body := editor.get(t, "/me")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected account page after sign up, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "editor@example.com") {
		t.Fatal("expected account page to show the signed-up email")
	}

	stranger := newLocalClient(handler, true)
	resp, body = stranger.postForm(t, "/auth/login", url.Values{
		"email":    {"editor@example.com"},
		"password": {"wrong"},
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for bad credentials, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "invalid email or password") {
		t.Fatal("expected the provider error message to surface")
	}

	resp, _ = stranger.get(t, "/editor")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected editor redirect without session, got %d", resp.StatusCode)
	}
}

func TestEditorSaveAndRefetch(t *testing.T) {
	handler := setupSite(t)

	editor := newLocalClient(handler, true)
	signUp(t, editor, "editor@example.com", "pass-123")

	pages := fetchPages(t, editor)
	if len(pages) != 3 {
		t.Fatalf("expected all pages drafts included, got %d", len(pages))
	}
	summary := pageBySlug(t, pages, "summary")

	resp, body := editor.sendJSON(t, http.MethodPut,
		fmt.Sprintf("/editor/api/pages/%d", summary.ID), map[string]interface{}{
			"title":     "New Summary",
			"subtitle":  summary.Subtitle,
			"content":   summary.Content,
			"rank":      summary.Rank,
			"published": true,
		})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save failed with status %d: %s", resp.StatusCode, body)
	}

	refetched := fetchPages(t, editor)
	if got := pageBySlug(t, refetched, "summary").Title; got != "New Summary" {
		t.Fatalf("re-fetched list must show the saved title, got %q", got)
	}
	if got := pageBySlug(t, refetched, "research").Title; got != "Research" {
		t.Fatalf("other pages must stay untouched, got %q", got)
	}

	// 保存失败时记录保持原状
	resp, _ = editor.sendJSON(t, http.MethodPut,
		fmt.Sprintf("/editor/api/pages/%d", summary.ID), map[string]interface{}{
			"title": "   ",
		})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400 for empty title, got %d", resp.StatusCode)
	}
	if got := pageBySlug(t, fetchPages(t, editor), "summary").Title; got != "New Summary" {
		t.Fatalf("failed save must leave the record untouched, got %q", got)
	}
}

func TestUnpublishRemovesSectionFromReader(t *testing.T) {
	handler := setupSite(t)

	editor := newLocalClient(handler, true)
	signUp(t, editor, "editor@example.com", "pass-123")

	research := pageBySlug(t, fetchPages(t, editor), "research")
	resp, body := editor.sendJSON(t, http.MethodPut,
		fmt.Sprintf("/editor/api/pages/%d", research.ID), map[string]interface{}{
			"title":     research.Title,
			"subtitle":  research.Subtitle,
			"content":   research.Content,
			"rank":      research.Rank,
			"published": false,
		})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unpublish failed with status %d: %s", resp.StatusCode, body)
	}

	public := newLocalClient(handler, false)
	_, home := public.get(t, "/")
	if strings.Contains(home, `id="research"`) {
		t.Fatal("unpublished section must disappear from the reader view")
	}
	if !strings.Contains(home, `id="summary"`) {
		t.Fatal("remaining published section must still render")
	}
}

func TestAccountProfileUpdate(t *testing.T) {
	handler := setupSite(t)

	editor := newLocalClient(handler, true)
	signUp(t, editor, "editor@example.com", "pass-123")

	resp, body := editor.sendJSON(t, http.MethodPut, "/account/api/profile", map[string]string{
		"display_name": "E2E Editor",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("profile update failed with status %d: %s", resp.StatusCode, body)
	}

	_, account := editor.get(t, "/me")
	if !strings.Contains(account, "E2E Editor") {
		t.Fatal("expected account page to show the new display name")
	}
}

func TestSiteSettingsRequireAdminRole(t *testing.T) {
	handler := setupSite(t)

	editor := newLocalClient(handler, true)
	signUp(t, editor, "editor@example.com", "pass-123")

	resp, _ := editor.sendJSON(t, http.MethodPut, "/editor/api/settings", map[string]string{
		"site_name": "Hijacked",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403 for non-admin, got %d", resp.StatusCode)
	}

	// 种子端点创建管理员账号
	seeder := newLocalClient(handler, false)
	resp, body := seeder.sendJSON(t, http.MethodPost, "/internal/api/seed-dev-user", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("seed endpoint failed with status %d: %s", resp.StatusCode, body)
	}
	if !strings.Contains(body, "created") {
		t.Fatalf("expected creation message, got %s", body)
	}

	resp, body = seeder.sendJSON(t, http.MethodPost, "/internal/api/seed-dev-user", nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "already exists") {
		t.Fatalf("expected idempotent seed, got %d: %s", resp.StatusCode, body)
	}

	admin := newLocalClient(handler, true)
	signIn(t, admin, "test@test.kr", "1234")

	resp, body = admin.sendJSON(t, http.MethodPut, "/editor/api/settings", map[string]string{
		"site_name":          "Renamed Site",
		"public_footer_text": "© 2026 Renamed Site",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin settings update failed with status %d: %s", resp.StatusCode, body)
	}

	public := newLocalClient(handler, false)
	_, home := public.get(t, "/")
	if !strings.Contains(home, "© 2026 Renamed Site") {
		t.Fatal("expected updated footer on the public page")
	}
}
