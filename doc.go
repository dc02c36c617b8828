// Package jot is the Composition Root for the jot application.
//
// It connects the core note-keeping logic (Domain Layer) with the
// infrastructure adapters (Persistence, AI Assist, Export) using the
// Hexagonal Architecture pattern.
//
// Philosophy:
//
// jot is a single-user note keeper. The in-memory repository is the
// source of truth during a session and writes the whole collection
// through to an injected store on every mutation. The default store
// is a single JSON file; a SQLite store is available, and any
// core.Store implementation can be injected.
//
// Features:
//
//   - **Hexagonal Architecture**: the core is isolated from storage,
//     AI and rendering details behind core.Store, core.Assistant and
//     core.Exporter.
//   - **Write-Through Persistence**: every mutation re-persists the
//     full collection atomically; a corrupt or missing slot fails
//     open to an empty collection.
//   - **Editor Sessions**: drafts are edited in isolation and only
//     become visible on commit; AI calls are serialized per session
//     and stale responses are discarded.
//   - **Derived Views**: filtering, sorting and aggregate counts are
//     recomputed from the collection on every query.
//
// Usage:
//
//	// Open a repository over a data directory
//	repo, err := jot.Open(ctx, "./data", jot.WithLogger(logger))
//
//	// Edit a note through a session
//	session := jot.NewSession(repo, jot.WithExporter(pdf.NewExporter()))
//	session.OpenForCreate()
//	session.SetContent("hello")
//	note, err := session.Commit(ctx)
package jot
