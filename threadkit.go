// Package threadkit reconstructs ordered, deduplicated conversation threads
// (a root post plus its replies) from rendered social media pages.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, slog/).
package threadkit
