package app

import "time"

// StartFetch launches a background fetch against the current profile.
// A no-op while a fetch is already in flight: at most one fetch runs
// at a time, which keeps requests from piling up against a slow
// server and makes the capacity-1 channel sufficient for delivery.
func (a *App) StartFetch() {
	if a.isFetching {
		return
	}
	a.isFetching = true

	// The goroutine owns its inputs by value and never touches App.
	profile := a.CurrentProfile()
	fetch := a.fetch
	results := a.results
	go func() {
		res := fetch(profile)
		select {
		case results <- res:
		default:
			// Receiver gone (shutdown) or slot occupied; drop silently.
		}
	}()
}

// PollFetchResult is the non-blocking check for a delivered result.
// On success the snapshot replaces the previous one wholesale and the
// error message clears. On failure only the error message changes:
// stale-but-valid data is kept rather than blanked.
func (a *App) PollFetchResult() {
	select {
	case res, ok := <-a.results:
		if !ok {
			// The channel should never close while the app is alive;
			// recover by clearing the flag instead of wedging.
			a.isFetching = false
			return
		}
		a.isFetching = false
		a.lastFetch = time.Now()
		if res.Err != "" {
			a.ErrorMessage = res.Err
			return
		}
		a.Status = res.Status
		a.Metadata = res.Metadata
		a.ErrorMessage = ""
		if a.rowCursor > len(a.Status.Results) {
			a.rowCursor = len(a.Status.Results)
		}
	default:
	}
}

// MaybeStartFetch implements the polling policy: start a fetch when
// the configured interval has elapsed and nothing is in flight. The
// caller drives this from its tick signal.
func (a *App) MaybeStartFetch() {
	interval := time.Duration(a.Config.FetchInterval) * time.Second
	if time.Since(a.lastFetch) > interval && !a.isFetching {
		a.StartFetch()
	}
}
