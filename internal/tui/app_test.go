// ABOUTME: Tests for the root TUI model
// ABOUTME: Covers screen routing, session expiry handling, and logout

package tui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jothyanandanch/ssnapify/internal/client"
	"github.com/jothyanandanch/ssnapify/internal/session"
	"github.com/jothyanandanch/ssnapify/internal/tui/adminpanel"
	"github.com/jothyanandanch/ssnapify/internal/tui/gallery"
	"github.com/jothyanandanch/ssnapify/internal/tui/menu"
)

func timeAgo(secs int) time.Time {
	return time.Now().Add(-time.Duration(secs) * time.Second)
}

func newTestApp(t *testing.T, handler http.HandlerFunc) (*App, *session.Store, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewStore(t.TempDir())
	api := client.New(server.URL, store)
	manager := session.NewManager(store, api)

	return New(manager, api), store, server
}

func authedApp(t *testing.T, handler http.HandlerFunc) (*App, *session.Store, *httptest.Server) {
	t.Helper()

	app, store, server := newTestApp(t, handler)
	if err := store.SetToken("test-token"); err != nil {
		t.Fatal(err)
	}
	app.user = &client.User{ID: 1, Email: "pat@example.com", IsAdmin: true}
	app.menu = menu.New(true)
	app.screen = ScreenMenu
	return app, store, server
}

// run applies a command's message back into the model, like the bubbletea
// runtime would
func run(t *testing.T, app *App, cmd tea.Cmd) *App {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	model, _ := app.Update(cmd())
	return model.(*App)
}

func TestStartsOnLoginWithoutToken(t *testing.T) {
	app, _, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s", r.URL.Path)
	})

	app.Init()

	if app.screen != ScreenLogin {
		t.Errorf("screen = %d, want ScreenLogin", app.screen)
	}
}

func TestExistingSessionLandsOnMenu(t *testing.T) {
	app, _, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 1, "email": "pat@example.com", "is_admin": false, "is_active": true, "plan_id": 1}`))
	})
	app.manager.Store().SetToken("test-token")

	model := run(t, app, app.Init())

	if model.screen != ScreenMenu {
		t.Errorf("screen = %d, want ScreenMenu", model.screen)
	}
	if model.user == nil || model.user.Email != "pat@example.com" {
		t.Errorf("user not populated from profile fetch")
	}
}

func TestSessionExpiryDropsToLogin(t *testing.T) {
	app, _, _ := authedApp(t, func(w http.ResponseWriter, r *http.Request) {})
	app.screen = ScreenDashboard

	model, _ := app.Update(dashboardMsg{err: client.ErrUnauthorized})
	a := model.(*App)

	if a.screen != ScreenLogin {
		t.Errorf("screen = %d, want ScreenLogin", a.screen)
	}
	if a.user != nil {
		t.Error("user should be cleared on session expiry")
	}
	if !strings.Contains(a.login.View(), "Session expired") {
		t.Error("login screen should explain the expiry")
	}
}

func TestMenuLogoutClearsSessionAndShowsLogin(t *testing.T) {
	app, store, _ := authedApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	model, cmd := app.Update(menu.SelectedMsg{Dest: menu.DestLogout})
	a := run(t, model.(*App), cmd)

	if a.screen != ScreenLogin {
		t.Errorf("screen = %d, want ScreenLogin", a.screen)
	}
	if _, ok := store.Token(); ok {
		t.Error("token should be cleared after logout")
	}
}

func TestMenuRoutesToDashboard(t *testing.T) {
	app, _, _ := authedApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/account/credits"):
			w.Write([]byte(`{"credit_balance": 7, "plan_id": 1}`))
		case strings.HasSuffix(r.URL.Path, "/users/me"):
			w.Write([]byte(`{"id": 1, "email": "pat@example.com", "is_admin": true, "is_active": true, "plan_id": 1}`))
		default:
			w.Write([]byte(`[]`))
		}
	})

	model, cmd := app.Update(menu.SelectedMsg{Dest: menu.DestDashboard})
	a := model.(*App)
	if a.screen != ScreenDashboard {
		t.Fatalf("screen = %d, want ScreenDashboard", a.screen)
	}

	a = run(t, a, cmd)
	if a.dashboard == nil {
		t.Fatal("dashboard should be built after data loads")
	}
	if !strings.Contains(a.dashboard.View(), "7") {
		t.Error("dashboard should show the credit balance")
	}
}

func TestMenuHidesAdminForMembers(t *testing.T) {
	app, _, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 2, "email": "m@example.com", "is_admin": false, "is_active": true, "plan_id": 1}`))
	})
	app.manager.Store().SetToken("test-token")

	a := run(t, app, app.Init())

	if strings.Contains(a.menu.View(), "Admin") {
		t.Error("member menu should not offer the admin screen")
	}
}

func TestGalleryDeleteIsOptimistic(t *testing.T) {
	deleted := make(chan string, 1)
	app, _, _ := authedApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deleted <- r.URL.Path
		}
		w.WriteHeader(http.StatusOK)
	})
	app.screen = ScreenGallery
	app.gallery = gallery.New([]client.ImageAsset{
		{ID: 1, Title: "one", TransformationType: ""},
		{ID: 2, Title: "two", TransformationType: ""},
	})

	model, cmd := app.Update(gallery.DeleteRequestMsg{IDs: []int{1}})
	a := model.(*App)

	// Removed locally before the server answers
	for _, img := range a.gallery.Visible() {
		if img.ID == 1 {
			t.Error("image 1 should be removed optimistically")
		}
	}

	run(t, a, cmd)
	select {
	case path := <-deleted:
		if !strings.HasSuffix(path, "/images/1") {
			t.Errorf("deleted path = %s, want .../images/1", path)
		}
	default:
		t.Error("server never saw the delete")
	}
}

func TestStaleAdminDataIgnored(t *testing.T) {
	app, _, _ := authedApp(t, func(w http.ResponseWriter, r *http.Request) {})
	app.screen = ScreenMenu
	app.adminGen = 5

	model, _ := app.Update(usersMsg{users: []client.User{{ID: 9}}, gen: 4})
	a := model.(*App)

	if a.admin != nil {
		t.Error("stale user list should not build the admin panel")
	}
}

func TestAdminTickAfterLeavingScreenIsDropped(t *testing.T) {
	requests := make(chan struct{}, 8)
	app, _, _ := authedApp(t, func(w http.ResponseWriter, r *http.Request) {
		requests <- struct{}{}
		w.Write([]byte(`[]`))
	})
	app.screen = ScreenAdmin
	app.adminGen = 3

	// Leaving the screen bumps the generation
	model, _ := app.Update(adminpanel.BackMsg{})
	a := model.(*App)
	if a.screen != ScreenMenu {
		t.Fatalf("screen = %d, want ScreenMenu", a.screen)
	}

	_, cmd := a.Update(adminTickMsg{gen: 3})
	if cmd != nil {
		t.Error("stale tick should not schedule a refresh")
	}
	select {
	case <-requests:
		t.Error("stale tick should not hit the server")
	default:
	}
}

func TestAdminMutationPatchesOnlyTheChangedField(t *testing.T) {
	app, _, _ := authedApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Credits updated","user_id":2,"credit_balance":250}`))
	})
	app.screen = ScreenAdmin
	app.admin = adminpanel.New(1, []client.User{
		{ID: 2, Email: "m@example.com", Username: "mel", IsActive: true, PlanID: 1, CreditBalance: 5},
	})

	model, cmd := app.Update(adminpanel.SetCreditsMsg{UserID: 2, Credits: 250})
	a := run(t, model.(*App), cmd)

	view := a.admin.View()
	if !strings.Contains(view, "250") {
		t.Error("credit balance should be patched after the acknowledgement")
	}
	// The backend only acknowledges the change; the loaded row must keep
	// its other fields.
	if !strings.Contains(view, "m@example.com") {
		t.Error("acknowledgement must not wipe the loaded email")
	}
	if !strings.Contains(view, "active") {
		t.Error("acknowledgement must not wipe the loaded status")
	}
}

func TestHealthBadgesSurviveOneDeadProbe(t *testing.T) {
	app, _, _ := authedApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/health/redis" {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"detail":"redis down"}`))
			return
		}
		w.Write([]byte(`{"status":"healthy"}`))
	})
	app.screen = ScreenAdmin
	app.admin = adminpanel.New(1, nil)

	a := run(t, app, app.fetchHealth())

	view := a.admin.View()
	for _, service := range []string{"api", "redis", "cloudinary"} {
		if !strings.Contains(view, service) {
			t.Errorf("badge for %s missing:\n%s", service, view)
		}
	}
}

func TestTransformPickerPromptFlow(t *testing.T) {
	app, _, _ := authedApp(t, func(w http.ResponseWriter, r *http.Request) {})
	app.screen = ScreenGallery
	app.gallery = gallery.New(nil)

	model, _ := app.Update(gallery.TransformRequestMsg{ID: 12})
	a := model.(*App)
	if a.screen != ScreenTransform {
		t.Fatalf("screen = %d, want ScreenTransform", a.screen)
	}

	// Types are sorted; index 1 is generative_fill, which needs a prompt
	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyDown})
	a = model.(*App)
	model, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = model.(*App)
	if !a.promptMode {
		t.Fatal("generative_fill should ask for a prompt")
	}
	if cmd == nil {
		t.Error("entering prompt mode should start the cursor blink")
	}
	if !strings.Contains(a.View(), "Prompt:") {
		t.Error("picker view should show the prompt input")
	}

	// Esc backs out of the prompt without applying
	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(*App)
	if a.promptMode {
		t.Error("esc should leave prompt mode")
	}
}

func TestTransformWithoutPromptApplies(t *testing.T) {
	hit := make(chan string, 1)
	app, _, _ := authedApp(t, func(w http.ResponseWriter, r *http.Request) {
		hit <- r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write(transformedAssetJSON)
	})
	app.screen = ScreenGallery
	app.gallery = gallery.New(nil)

	model, _ := app.Update(gallery.TransformRequestMsg{ID: 12})
	a := model.(*App)

	// Cursor 0 is enhance, which applies immediately
	model, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = run(t, model.(*App), cmd)

	select {
	case path := <-hit:
		if !strings.Contains(path, "/images/12/") {
			t.Errorf("transform path = %s, want image 12", path)
		}
	default:
		t.Error("server never saw the transformation")
	}
	if a.screen != ScreenGallery {
		t.Errorf("screen = %d, want ScreenGallery after transform", a.screen)
	}
}

var transformedAssetJSON = []byte(`{"id": 99, "title": "one (enhanced)", "transformation_type": "enhance", "secure_url": "https://cdn.example.com/99.jpg"}`)

func TestFooterShortcutsFollowScreen(t *testing.T) {
	app, _, _ := authedApp(t, func(w http.ResponseWriter, r *http.Request) {})

	app.screen = ScreenGallery
	if !strings.Contains(app.View(), "Filter") {
		t.Error("gallery footer should mention filtering")
	}

	app.screen = ScreenMenu
	if strings.Contains(app.View(), "Filter") {
		t.Error("menu footer should not mention filtering")
	}
}

func TestHeaderShowsUserEmail(t *testing.T) {
	app, _, _ := authedApp(t, func(w http.ResponseWriter, r *http.Request) {})

	if !strings.Contains(app.View(), "pat@example.com") {
		t.Error("header should show the signed-in user")
	}

	app.toLogin("")
	if strings.Contains(app.View(), "pat@example.com") {
		t.Error("login screen should not show a user")
	}
}

func TestFormatTimeSince(t *testing.T) {
	if got := formatTimeSince(timeAgo(2)); got != "just now" {
		t.Errorf("2s: got %q", got)
	}
	if got := formatTimeSince(timeAgo(30)); got != "30s ago" {
		t.Errorf("30s: got %q", got)
	}
	if got := formatTimeSince(timeAgo(90)); got != "1m ago" {
		t.Errorf("90s: got %q", got)
	}
}
