// ABOUTME: Root bubbletea model for the TUI studio
// ABOUTME: Manages screen state, data loading, and session expiry handling

package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jothyanandanch/ssnapify/internal/client"
	"github.com/jothyanandanch/ssnapify/internal/config"
	"github.com/jothyanandanch/ssnapify/internal/session"
	"github.com/jothyanandanch/ssnapify/internal/tui/adminpanel"
	"github.com/jothyanandanch/ssnapify/internal/tui/dashboard"
	"github.com/jothyanandanch/ssnapify/internal/tui/debuglog"
	"github.com/jothyanandanch/ssnapify/internal/tui/gallery"
	"github.com/jothyanandanch/ssnapify/internal/tui/icons"
	"github.com/jothyanandanch/ssnapify/internal/tui/login"
	"github.com/jothyanandanch/ssnapify/internal/tui/menu"
	"github.com/jothyanandanch/ssnapify/internal/tui/pricing"
	"github.com/jothyanandanch/ssnapify/internal/tui/styles"
	"github.com/jothyanandanch/ssnapify/internal/tui/support"
	"github.com/jothyanandanch/ssnapify/internal/tui/uploader"
	"golang.org/x/sync/errgroup"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenMenu
	ScreenDashboard
	ScreenGallery
	ScreenUpload
	ScreenAdmin
	ScreenPricing
	ScreenSupport
	ScreenTransform
)

// Layout constants
const (
	minTerminalWidth = 80
	adminRefresh     = 30 * time.Second
	pricingRefresh   = 60 * time.Second
)

// loggedInMsg is sent when login (or startup profile fetch) completes
type loggedInMsg struct {
	user *client.User
	err  error
}

// dashboardMsg carries the dashboard's parallel fetch results
type dashboardMsg struct {
	user    *client.User
	credits *client.CreditInfo
	images  []client.ImageAsset
	err     error
}

// imagesMsg is sent when the gallery listing loads
type imagesMsg struct {
	images []client.ImageAsset
	err    error
}

// creditsMsg is sent when credit info loads for the pricing screen
type creditsMsg struct {
	credits *client.CreditInfo
	err     error
}

// imageDeletedMsg reports one deletion outcome
type imageDeletedMsg struct {
	id  int
	err error
}

// usersMsg carries the admin user list; gen guards against stale ticks
type usersMsg struct {
	users []client.User
	gen   int
	err   error
}

// healthMsg carries the admin screen's service probes
type healthMsg struct {
	statuses []*client.HealthStatus
}

// userMutatedMsg reports an admin mutation outcome. apply carries the
// confirmed change, to be patched onto the panel's row; the backend only
// acknowledges the mutation, it does not return a full profile.
type userMutatedMsg struct {
	user  *client.User
	apply func(*client.User)
	err   error
}

// forceLogoutDoneMsg reports a force-logout outcome
type forceLogoutDoneMsg struct {
	id  int
	err error
}

// ticketSentMsg reports the support ticket outcome
type ticketSentMsg struct {
	err error
}

// adminTickMsg drives the periodic admin refresh
type adminTickMsg struct {
	gen int
}

// pricingTickMsg drives the periodic credits refresh
type pricingTickMsg struct {
	gen int
}

// transformedMsg reports a transformation outcome
type transformedMsg struct {
	asset *client.ImageAsset
	err   error
}

// loggedOutMsg is sent when the logout round-trip finishes
type loggedOutMsg struct{}

// App is the root model for the TUI
type App struct {
	manager *session.Manager
	api     *client.Client
	screen  Screen
	width   int
	height  int
	errMsg  string
	user    *client.User

	// adminGen invalidates in-flight admin ticks when the screen closes
	adminGen int
	// pricingGen does the same for the pricing refresh
	pricingGen int

	lastUpdate time.Time

	// Transform picker state
	transformImageID int
	transformCursor  int
	transformPrompt  textinput.Model
	promptMode       bool

	// Child models
	login     *login.Login
	menu      *menu.Menu
	dashboard *dashboard.Dashboard
	gallery   *gallery.Gallery
	uploader  *uploader.Uploader
	admin     *adminpanel.Panel
	pricing   *pricing.Pricing
	support   *support.Support
}

// New creates the TUI application
func New(manager *session.Manager, api *client.Client) *App {
	return &App{
		manager: manager,
		api:     api,
		screen:  ScreenLogin,
		login:   login.New(api.LoginURL()),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.manager.IsAuthenticated() {
		// Existing session: validate it and land on the menu
		return a.fetchProfile()
	}
	return a.login.Init()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.dashboard != nil {
			a.dashboard.SetWidth(a.contentWidth())
		}
		if a.gallery != nil {
			a.gallery.SetHeight(a.contentHeight() - 6)
		}
		if a.admin != nil {
			a.admin.SetHeight(a.contentHeight() - 8)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.routeKey(msg)

	case loggedInMsg:
		return a.handleLoggedIn(msg)

	case dashboardMsg:
		if a.sessionExpired(msg.err) {
			return a, nil
		}
		if msg.err != nil {
			a.errMsg = msg.err.Error()
			return a, nil
		}
		a.user = msg.user
		a.dashboard = dashboard.New(msg.user, msg.credits, msg.images, a.contentWidth())
		a.lastUpdate = time.Now()
		return a, nil

	case imagesMsg:
		if a.sessionExpired(msg.err) {
			return a, nil
		}
		if msg.err != nil {
			a.errMsg = msg.err.Error()
			return a, nil
		}
		if a.gallery == nil {
			a.gallery = gallery.New(msg.images)
			a.gallery.SetHeight(a.contentHeight() - 6)
		} else {
			a.gallery.SetImages(msg.images)
		}
		a.lastUpdate = time.Now()
		return a, nil

	case creditsMsg:
		if a.sessionExpired(msg.err) {
			return a, nil
		}
		if msg.err != nil {
			a.errMsg = msg.err.Error()
			return a, nil
		}
		if a.pricing == nil {
			a.pricing = pricing.New(msg.credits)
		} else {
			a.pricing.SetCredits(msg.credits)
		}
		a.lastUpdate = time.Now()
		return a, nil

	case imageDeletedMsg:
		if a.sessionExpired(msg.err) {
			return a, nil
		}
		if msg.err != nil {
			// The optimistic removal was wrong; reload the truth
			debuglog.Error("delete image", msg.err)
			a.errMsg = fmt.Sprintf("delete %d: %v", msg.id, msg.err)
			return a, a.fetchImages()
		}
		return a, nil

	case usersMsg:
		if msg.gen != a.adminGen {
			return a, nil // stale tick from a closed admin screen
		}
		if a.sessionExpired(msg.err) {
			return a, nil
		}
		if msg.err != nil {
			a.errMsg = msg.err.Error()
			return a, nil
		}
		if a.admin == nil {
			adminID := 0
			if a.user != nil {
				adminID = a.user.ID
			}
			a.admin = adminpanel.New(adminID, msg.users)
			a.admin.SetHeight(a.contentHeight() - 8)
		} else {
			a.admin.SetUsers(msg.users)
		}
		a.lastUpdate = time.Now()
		return a, nil

	case healthMsg:
		if a.admin != nil {
			a.admin.SetHealth(msg.statuses)
		}
		return a, nil

	case userMutatedMsg:
		if a.sessionExpired(msg.err) {
			return a, nil
		}
		if msg.err != nil {
			if a.admin != nil {
				a.admin.SetNotice(msg.err.Error())
			}
			return a, nil
		}
		if a.admin != nil && msg.user != nil {
			a.admin.Patch(msg.user.ID, msg.apply)
		}
		return a, nil

	case forceLogoutDoneMsg:
		if a.sessionExpired(msg.err) {
			return a, nil
		}
		if a.admin != nil {
			if msg.err != nil {
				a.admin.SetNotice(msg.err.Error())
			} else {
				a.admin.SetNotice(fmt.Sprintf("User %d signed out everywhere", msg.id))
			}
		}
		return a, nil

	case ticketSentMsg:
		if a.sessionExpired(msg.err) {
			return a, nil
		}
		if a.support != nil {
			if msg.err != nil {
				a.support.SetError(msg.err.Error())
			} else {
				a.support.MarkSent()
			}
		}
		return a, nil

	case adminTickMsg:
		if msg.gen != a.adminGen || a.screen != ScreenAdmin {
			return a, nil
		}
		return a, tea.Batch(a.fetchUsers(msg.gen), a.fetchHealth(), a.adminTick(msg.gen))

	case pricingTickMsg:
		if msg.gen != a.pricingGen || a.screen != ScreenPricing {
			return a, nil
		}
		return a, tea.Batch(a.fetchCredits(), a.pricingTick(msg.gen))

	case loggedOutMsg:
		a.toLogin("")
		return a, nil

	// Child screen messages
	case menu.SelectedMsg:
		return a.handleMenuSelection(msg.Dest)

	case login.TokenSubmittedMsg:
		return a, a.doLogin(msg.Raw)

	case login.CancelledMsg:
		return a, tea.Quit

	case gallery.DeleteRequestMsg:
		return a.handleDeleteRequest(msg.IDs)

	case gallery.TransformRequestMsg:
		a.openTransformPicker(msg.ID)
		return a, nil

	case transformedMsg:
		if a.sessionExpired(msg.err) {
			return a, nil
		}
		a.screen = ScreenGallery
		if msg.err != nil {
			a.errMsg = msg.err.Error()
			return a, nil
		}
		// A transformation creates a new asset; reload the gallery
		return a, a.fetchImages()

	case gallery.BackMsg, uploader.BackMsg, pricing.BackMsg, adminpanel.BackMsg, support.CancelledMsg:
		return a.toMenu()

	case adminpanel.SetCreditsMsg:
		credits := msg.Credits
		return a, a.mutateUser(
			func(ctx context.Context) (*client.User, error) {
				return a.api.SetUserCredits(ctx, msg.UserID, credits)
			},
			func(u *client.User) { u.CreditBalance = credits },
		)

	case adminpanel.ToggleRoleMsg:
		makeAdmin := msg.MakeAdmin
		return a, a.mutateUser(
			func(ctx context.Context) (*client.User, error) {
				return a.api.SetUserRole(ctx, msg.UserID, makeAdmin)
			},
			func(u *client.User) { u.IsAdmin = makeAdmin },
		)

	case adminpanel.ToggleStatusMsg:
		active := msg.Active
		return a, a.mutateUser(
			func(ctx context.Context) (*client.User, error) {
				return a.api.SetUserStatus(ctx, msg.UserID, active)
			},
			func(u *client.User) { u.IsActive = active },
		)

	case adminpanel.CyclePlanMsg:
		planID := msg.PlanID
		return a, a.mutateUser(
			func(ctx context.Context) (*client.User, error) {
				return a.api.SetUserPlan(ctx, msg.UserID, planID)
			},
			func(u *client.User) { u.PlanID = planID },
		)

	case adminpanel.ForceLogoutMsg:
		id := msg.UserID
		return a, func() tea.Msg {
			err := a.api.ForceLogoutUser(context.Background(), id)
			return forceLogoutDoneMsg{id: id, err: err}
		}

	case adminpanel.RefreshMsg:
		return a, tea.Batch(a.fetchUsers(a.adminGen), a.fetchHealth())

	case support.SubmitMsg:
		return a, func() tea.Msg {
			err := a.api.CreateSupportTicket(context.Background(), msg.Name, msg.Subject, msg.Message)
			return ticketSentMsg{err: err}
		}

	default:
		// Forward everything else to the active child (textinput blink,
		// huh form internals)
		return a.routeOther(msg)
	}
}

// routeKey forwards key messages to the active screen
func (a *App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.errMsg = ""

	switch a.screen {
	case ScreenLogin:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd
	case ScreenMenu:
		if a.menu == nil {
			return a, nil
		}
		var cmd tea.Cmd
		a.menu, cmd = a.menu.Update(msg)
		return a, cmd
	case ScreenDashboard:
		return a.updateDashboard(msg)
	case ScreenGallery:
		if a.gallery == nil {
			return a.toMenu()
		}
		var cmd tea.Cmd
		a.gallery, cmd = a.gallery.Update(msg)
		return a, cmd
	case ScreenUpload:
		var cmd tea.Cmd
		a.uploader, cmd = a.uploader.Update(msg)
		return a, cmd
	case ScreenAdmin:
		if a.admin == nil {
			return a, nil
		}
		var cmd tea.Cmd
		a.admin, cmd = a.admin.Update(msg)
		return a, cmd
	case ScreenPricing:
		if a.pricing == nil {
			return a, nil
		}
		var cmd tea.Cmd
		a.pricing, cmd = a.pricing.Update(msg)
		return a, cmd
	case ScreenSupport:
		var cmd tea.Cmd
		a.support, cmd = a.support.Update(msg)
		return a, cmd
	case ScreenTransform:
		return a.updateTransformPicker(msg)
	}
	return a, nil
}

// routeOther forwards non-key messages to children that need them
func (a *App) routeOther(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenLogin:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd
	case ScreenUpload:
		var cmd tea.Cmd
		a.uploader, cmd = a.uploader.Update(msg)
		return a, cmd
	case ScreenSupport:
		var cmd tea.Cmd
		a.support, cmd = a.support.Update(msg)
		return a, cmd
	case ScreenTransform:
		if a.promptMode {
			var cmd tea.Cmd
			a.transformPrompt, cmd = a.transformPrompt.Update(msg)
			return a, cmd
		}
	}
	return a, nil
}

func (a *App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		return a, a.fetchDashboard()
	case "g":
		return a.openGallery()
	case "u":
		return a.openUpload()
	case "b", "esc":
		return a.toMenu()
	case "q":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) handleMenuSelection(dest menu.Destination) (tea.Model, tea.Cmd) {
	switch dest {
	case menu.DestDashboard:
		a.screen = ScreenDashboard
		return a, a.fetchDashboard()
	case menu.DestGallery:
		return a.openGallery()
	case menu.DestUpload:
		return a.openUpload()
	case menu.DestPricing:
		a.screen = ScreenPricing
		a.pricingGen++
		return a, tea.Batch(a.fetchCredits(), a.pricingTick(a.pricingGen))
	case menu.DestSupport:
		name := ""
		if a.user != nil {
			name = a.user.DisplayName()
		}
		a.support = support.New(name)
		a.screen = ScreenSupport
		return a, a.support.Init()
	case menu.DestAdmin:
		a.screen = ScreenAdmin
		a.adminGen++
		return a, tea.Batch(a.fetchUsers(a.adminGen), a.fetchHealth(), a.adminTick(a.adminGen))
	case menu.DestLogout:
		return a, func() tea.Msg {
			// Best effort; the local token is cleared regardless
			if err := a.manager.Logout(context.Background(), false); err != nil {
				debuglog.Error("logout", err)
			}
			return loggedOutMsg{}
		}
	case menu.DestQuit:
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) openGallery() (tea.Model, tea.Cmd) {
	a.screen = ScreenGallery
	return a, a.fetchImages()
}

func (a *App) openUpload() (tea.Model, tea.Cmd) {
	a.uploader = uploader.New(a.api)
	a.screen = ScreenUpload
	return a, a.uploader.Init()
}

func (a *App) handleLoggedIn(msg loggedInMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.toLogin(loginError(msg.err))
		return a, a.login.Init()
	}
	a.user = msg.user
	a.menu = menu.New(msg.user.IsAdmin)
	a.screen = ScreenMenu
	return a, nil
}

// handleDeleteRequest removes images optimistically, then confirms with the
// server. A failed deletion triggers a reload.
func (a *App) handleDeleteRequest(ids []int) (tea.Model, tea.Cmd) {
	if a.gallery == nil {
		return a, nil
	}

	cmds := make([]tea.Cmd, 0, len(ids))
	for _, id := range ids {
		a.gallery.RemoveLocal(id)
		cmds = append(cmds, func() tea.Msg {
			err := a.api.DeleteImage(context.Background(), id)
			return imageDeletedMsg{id: id, err: err}
		})
	}
	return a, tea.Batch(cmds...)
}

// transformTypes lists the available transformations in stable order
func transformTypes() []string {
	types := make([]string, 0, len(config.TransformationCosts))
	for t := range config.TransformationCosts {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// promptNeeded reports whether a transformation takes a text prompt
func promptNeeded(ttype string) bool {
	switch ttype {
	case "remove_obj", "replace_bg", "generative_fill":
		return true
	}
	return false
}

func (a *App) openTransformPicker(imageID int) {
	a.transformImageID = imageID
	a.transformCursor = 0
	a.promptMode = false
	a.screen = ScreenTransform
}

func (a *App) updateTransformPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	types := transformTypes()

	if a.promptMode {
		switch msg.String() {
		case "enter":
			a.promptMode = false
			a.transformPrompt.Blur()
			return a, a.applyTransform(types[a.transformCursor], strings.TrimSpace(a.transformPrompt.Value()))
		case "esc":
			a.promptMode = false
			a.transformPrompt.Blur()
			return a, nil
		}
		var cmd tea.Cmd
		a.transformPrompt, cmd = a.transformPrompt.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "up", "k":
		if a.transformCursor > 0 {
			a.transformCursor--
		}
	case "down", "j":
		if a.transformCursor < len(types)-1 {
			a.transformCursor++
		}
	case "enter":
		ttype := types[a.transformCursor]
		if promptNeeded(ttype) {
			a.transformPrompt = textinput.New()
			a.transformPrompt.Placeholder = "Describe what to change"
			a.transformPrompt.Focus()
			a.promptMode = true
			return a, textinput.Blink
		}
		return a, a.applyTransform(ttype, "")
	case "b", "esc":
		a.screen = ScreenGallery
	}
	return a, nil
}

func (a *App) applyTransform(ttype, prompt string) tea.Cmd {
	id := a.transformImageID
	return func() tea.Msg {
		asset, err := a.api.ApplyTransformation(context.Background(), id, ttype, prompt)
		return transformedMsg{asset: asset, err: err}
	}
}

func (a *App) viewTransformPicker() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Transform image #%d", icons.Transform.String(), a.transformImageID)))
	sb.WriteString("\n\n")

	for i, ttype := range transformTypes() {
		cost, _ := config.TransformationCost(ttype)
		line := fmt.Sprintf("%s  %d credit(s)", config.TransformationLabel(ttype), cost)
		if i == a.transformCursor {
			sb.WriteString(styles.SelectedRow.Render("▶ " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	if a.promptMode {
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render("Prompt:"))
		sb.WriteString("\n")
		sb.WriteString(a.transformPrompt.View())
	}

	return sb.String()
}

// sessionExpired drops to the login screen when the server rejected our
// token. Returns true when the error was handled.
func (a *App) sessionExpired(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, client.ErrUnauthorized) {
		a.toLogin("Session expired. Sign in again.")
		return true
	}
	return false
}

// toLogin resets all authenticated state and shows the login screen
func (a *App) toLogin(errMsg string) {
	a.screen = ScreenLogin
	a.user = nil
	a.menu = nil
	a.dashboard = nil
	a.gallery = nil
	a.uploader = nil
	a.admin = nil
	a.pricing = nil
	a.support = nil
	a.adminGen++
	a.pricingGen++
	a.login = login.New(a.api.LoginURL())
	if errMsg != "" {
		a.login.SetError(errMsg)
	}
}

// toMenu leaves the current screen, invalidating its periodic refreshes
func (a *App) toMenu() (tea.Model, tea.Cmd) {
	a.screen = ScreenMenu
	a.adminGen++
	a.pricingGen++
	a.errMsg = ""
	return a, nil
}

// Session and data commands

func (a *App) doLogin(raw string) tea.Cmd {
	return func() tea.Msg {
		user, err := a.manager.Login(context.Background(), raw)
		return loggedInMsg{user: user, err: err}
	}
}

func (a *App) fetchProfile() tea.Cmd {
	return func() tea.Msg {
		user, err := a.manager.RefreshProfile(context.Background())
		return loggedInMsg{user: user, err: err}
	}
}

// fetchDashboard loads profile, credits, and images in parallel
func (a *App) fetchDashboard() tea.Cmd {
	return func() tea.Msg {
		var (
			user    *client.User
			credits *client.CreditInfo
			images  []client.ImageAsset
		)
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			user, err = a.manager.RefreshProfile(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			credits, err = a.api.Credits(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			images, err = a.api.ListImages(ctx, client.ListImagesOptions{})
			return err
		})
		if err := g.Wait(); err != nil {
			return dashboardMsg{err: err}
		}
		return dashboardMsg{user: user, credits: credits, images: images}
	}
}

func (a *App) fetchImages() tea.Cmd {
	return func() tea.Msg {
		images, err := a.api.ListImages(context.Background(), client.ListImagesOptions{})
		return imagesMsg{images: images, err: err}
	}
}

func (a *App) fetchCredits() tea.Cmd {
	return func() tea.Msg {
		credits, err := a.api.Credits(context.Background())
		return creditsMsg{credits: credits, err: err}
	}
}

func (a *App) fetchUsers(gen int) tea.Cmd {
	return func() tea.Msg {
		users, err := a.api.ListUsers(context.Background(), client.ListUsersOptions{})
		return usersMsg{users: users, gen: gen, err: err}
	}
}

func (a *App) fetchHealth() tea.Cmd {
	return func() tea.Msg {
		probes := []struct {
			service string
			run     func(context.Context) (*client.HealthStatus, error)
		}{
			{"api", a.api.Health},
			{"redis", a.api.RedisHealth},
			{"cloudinary", a.api.CloudinaryHealth},
		}
		ctx := context.Background()
		statuses := make([]*client.HealthStatus, len(probes))
		var wg sync.WaitGroup
		for i, p := range probes {
			wg.Add(1)
			go func() {
				defer wg.Done()
				status, err := p.run(ctx)
				if err != nil {
					// A dead service must not hide the other badges
					status = &client.HealthStatus{
						Service: p.service,
						Status:  "unreachable",
						Detail:  err.Error(),
					}
				}
				statuses[i] = status
			}()
		}
		wg.Wait()
		return healthMsg{statuses: statuses}
	}
}

func (a *App) mutateUser(mutate func(context.Context) (*client.User, error), apply func(*client.User)) tea.Cmd {
	return func() tea.Msg {
		user, err := mutate(context.Background())
		return userMutatedMsg{user: user, apply: apply, err: err}
	}
}

func (a *App) adminTick(gen int) tea.Cmd {
	return tea.Tick(adminRefresh, func(time.Time) tea.Msg {
		return adminTickMsg{gen: gen}
	})
}

func (a *App) pricingTick(gen int) tea.Cmd {
	return tea.Tick(pricingRefresh, func(time.Time) tea.Msg {
		return pricingTickMsg{gen: gen}
	})
}

// loginError renders an auth failure for the login screen
func loginError(err error) string {
	if errors.Is(err, client.ErrUnauthorized) {
		return "Session expired. Sign in again."
	}
	return err.Error()
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLogin:
		content = a.login.View()
	case ScreenMenu:
		content = a.viewOrEmpty(a.menu != nil, func() string { return a.menu.View() })
	case ScreenDashboard:
		content = a.viewOrEmpty(a.dashboard != nil, func() string { return a.dashboard.View() })
	case ScreenGallery:
		content = a.viewOrEmpty(a.gallery != nil, func() string { return a.gallery.View() })
	case ScreenUpload:
		content = a.viewOrEmpty(a.uploader != nil, func() string { return a.uploader.View() })
	case ScreenAdmin:
		content = a.viewOrEmpty(a.admin != nil, func() string { return a.admin.View() })
	case ScreenPricing:
		content = a.viewOrEmpty(a.pricing != nil, func() string { return a.pricing.View() })
	case ScreenSupport:
		content = a.viewOrEmpty(a.support != nil, func() string { return a.support.View() })
	case ScreenTransform:
		content = a.viewTransformPicker()
	}

	if a.errMsg != "" {
		content += "\n" + styles.StatusCritical.Render("Error: "+a.errMsg)
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewOrEmpty(ok bool, view func() string) string {
	if !ok {
		return styles.Subtitle.Render("Loading...")
	}
	return view()
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("ssnapify"))

	rightText := ""
	if a.user != nil && a.screen != ScreenLogin {
		rightText = contextStyle.Render(a.user.Email) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	return borderStyle.Render("╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮")
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenLogin:
		shortcuts = []string{"Enter Submit", "Esc Quit"}
	case ScreenMenu:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenDashboard:
		shortcuts = []string{"r Refresh", "g Gallery", "u Upload", "b Back", "q Quit"}
	case ScreenGallery:
		shortcuts = []string{"/ Search", "f Filter", "Space Select", "d Delete", "t Transform", "b Back"}
	case ScreenUpload:
		shortcuts = []string{"Enter Add", "Ctrl+s Start", "Esc Back"}
	case ScreenAdmin:
		shortcuts = []string{"c Credits", "r Role", "s Status", "p Plan", "f Logout", "b Back"}
	case ScreenPricing:
		shortcuts = []string{"↑↓ Navigate", "Enter Preview", "b Back"}
	case ScreenSupport:
		shortcuts = []string{"Tab Next", "Esc Cancel"}
	case ScreenTransform:
		shortcuts = []string{"↑↓ Navigate", "Enter Apply", "Esc Back"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlain := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlain := ""
	if !a.lastUpdate.IsZero() && a.screen != ScreenLogin && a.screen != ScreenMenu {
		elapsed := formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Updated "+elapsed) + " "
		rightPlain = "Updated " + elapsed + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftPlain) - lipgloss.Width(rightPlain)
	if fillWidth < 0 {
		fillWidth = 0
	}

	return borderStyle.Render("╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯")
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	}

	hours := int(d.Hours())
	if hours == 1 {
		return "1h ago"
	}
	return fmt.Sprintf("%dh ago", hours)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

func (a *App) contentWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth - 4
	}
	return a.width - 4
}

func (a *App) contentHeight() int {
	// Header, padding, and footer overhead
	return a.height - 4
}

// Run starts the TUI
func Run(manager *session.Manager, api *client.Client) error {
	// Debug logging is best effort; the TUI works without it
	_ = debuglog.Init(session.DefaultConfigDir())
	defer debuglog.Close()

	app := New(manager, api)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
