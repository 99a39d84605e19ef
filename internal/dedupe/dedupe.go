package dedupe

// Package dedupe provides shared singleflight groups used to collapse
// redundant concurrent work. Session reconciliation in particular may be
// attempted by every reader at once; only one correction needs to run
// while the others wait for its result.

import "golang.org/x/sync/singleflight"

// SessionGroup deduplicates concurrent session reconcile attempts. All
// callers use the fixed key "session" since there is a single arena
// clock.
var SessionGroup singleflight.Group

// SweepGroup deduplicates overlapping storage-hygiene sweeps (expired
// statuses, cooldowns, stale feed entries) when tickers drift together.
var SweepGroup singleflight.Group
