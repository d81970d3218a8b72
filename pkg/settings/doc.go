// Package settings holds the renderer quality settings chosen by the user.
//
// A [Model] owns exactly one [RenderSettings] record for the lifetime of a UI
// session. Collaborators (the CLI flag layer, the interactive TUI) mutate it
// through one setter per field; the launch pipeline reads it once through
// [Model.Snapshot] when the user triggers a launch.
//
// # Quality tiers
//
// Shadow resolution and shadow distance are chosen by tier label rather than
// by number. The labels are an external contract with the UI and are kept
// verbatim, including "Height" for the third tier:
//
//	Low    → 1024 px / 10 m
//	Medium → 2048 px / 20 m
//	Height → 4096 px / 40 m
//	Ultra  → 8192 px / 60 m
//
// An unknown label is rejected with errors.ErrCodeInvalidQualityLabel and the
// field keeps its previous value.
//
// # Concurrency
//
// A Model is mutated from a single control goroutine (the UI loop) and has no
// internal locking. Hand a [RenderSettings] value, not the Model, to anything
// running on another goroutine.
package settings
