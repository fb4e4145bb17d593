// Package state persists the last-known UTF-8 verdict for each scanned source.
//
// Watch mode uses it to report only transitions (valid to invalid and back)
// and to survive restarts without re-announcing every file. The default
// FileRepository stores a single JSON document and writes it atomically.
//
// # Usage
//
//	repo := state.NewFileRepository("/var/lib/runeguard")
//	st, err := repo.Load(ctx)
//	prev, seen := st.Get("notes.txt")
//	st.Put("notes.txt", state.Verdict{Valid: true, Bytes: 120})
//	err = repo.Save(ctx, st)
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package state
