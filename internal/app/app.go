// Package app owns the mutable session state of the dashboard. The
// TUI event loop is its only mutator; the background fetch goroutine
// communicates exclusively through the capacity-1 result channel, so
// no locks are needed.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/alephtools/aleph-tui/internal/api"
	"github.com/alephtools/aleph-tui/internal/buildinfo"
	"github.com/alephtools/aleph-tui/internal/config"
)

// View is the current interaction mode.
type View int

const (
	ViewMain View = iota
	ViewProfileSwitcher
)

// App is the session: latest snapshot, profile selection, cursors and
// fetch bookkeeping. Created once at startup, mutated only from the
// event loop, discarded on exit.
type App struct {
	Config config.Config

	Status   api.Status
	Metadata api.Metadata

	// ErrorMessage holds the last fetch failure; empty means no error.
	ErrorMessage string

	currentProfile int
	view           View
	rowCursor      int

	isFetching bool
	lastFetch  time.Time
	results    chan api.Result

	// fetch is swappable so state transitions can be tested without a
	// live server.
	fetch func(config.Profile) api.Result
}

// New builds the session from a loaded config, selecting the default
// profile.
func New(cfg config.Config) (*App, error) {
	p, ok := cfg.Profile(cfg.Default)
	if !ok {
		return nil, fmt.Errorf("default profile %q not found in configuration", cfg.Default)
	}
	return &App{
		Config:         cfg,
		currentProfile: p.Index,
		lastFetch:      time.Now(),
		results:        make(chan api.Result, 1),
		fetch:          doFetch,
	}, nil
}

func doFetch(p config.Profile) api.Result {
	client := api.Client{
		BaseURL:   p.URL,
		Token:     p.Token,
		UserAgent: buildinfo.UserAgent(),
	}
	return client.Fetch(context.Background())
}

// CurrentProfile returns the selected profile.
func (a *App) CurrentProfile() config.Profile {
	return a.Config.Profiles[a.currentProfile]
}

// SetProfile selects a profile by name, clearing any state that
// belongs to the previously selected server. Unknown names are an
// error (fatal when coming from the command line).
func (a *App) SetProfile(name string) error {
	p, ok := a.Config.Profile(name)
	if !ok {
		return fmt.Errorf("profile %q not found in configuration", name)
	}
	a.setProfileIndex(p.Index)
	return nil
}

// setProfileIndex changes the selection and clears status, metadata
// and error message: stale data from the previous profile must never
// be displayed as current. No fetch is triggered here; the next tick
// picks it up.
func (a *App) setProfileIndex(idx int) {
	if idx == a.currentProfile {
		return
	}
	a.currentProfile = idx
	a.Status = api.Status{}
	a.Metadata = api.Metadata{}
	a.ErrorMessage = ""
	a.rowCursor = 0
}

// View reports the current interaction mode.
func (a *App) View() View {
	return a.view
}

// ToggleProfileSwitcher flips between the main view and the profile
// switcher overlay.
func (a *App) ToggleProfileSwitcher() {
	if a.view == ViewMain {
		a.view = ViewProfileSwitcher
	} else {
		a.view = ViewMain
	}
}

// ShowProfileSwitcher reports whether the switcher overlay is open.
func (a *App) ShowProfileSwitcher() bool {
	return a.view == ViewProfileSwitcher
}

// ProfileUp moves the profile selection up. Bounds-clamped, never
// wraps.
func (a *App) ProfileUp() {
	if a.currentProfile > 0 {
		a.setProfileIndex(a.currentProfile - 1)
	}
}

// ProfileDown moves the profile selection down. Bounds-clamped, never
// wraps.
func (a *App) ProfileDown() {
	if a.currentProfile+1 < len(a.Config.Profiles) {
		a.setProfileIndex(a.currentProfile + 1)
	}
}

// RowCursor is the selection cursor over status rows.
func (a *App) RowCursor() int {
	return a.rowCursor
}

// RowUp moves the row cursor up; no-op at 0.
func (a *App) RowUp() {
	if a.rowCursor > 0 {
		a.rowCursor--
	}
}

// RowDown moves the row cursor down. The upper bound is the list
// length itself, deliberately letting the cursor rest one past the
// last row; see the navigation notes in DESIGN.md before changing.
func (a *App) RowDown() {
	if a.rowCursor < len(a.Status.Results) {
		a.rowCursor++
	}
}

// SelectedResult returns the status row under the cursor, if any.
func (a *App) SelectedResult() (api.StatusResult, bool) {
	if a.rowCursor < 0 || a.rowCursor >= len(a.Status.Results) {
		return api.StatusResult{}, false
	}
	return a.Status.Results[a.rowCursor], true
}

// IsFetching reports whether a fetch is in flight.
func (a *App) IsFetching() bool {
	return a.isFetching
}

// LastFetch is the time the last fetch result was applied.
func (a *App) LastFetch() time.Time {
	return a.lastFetch
}
