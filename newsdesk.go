// Package newsdesk turns news-article URLs into clean, summarized articles
// and ranks an in-memory corpus of them against free-text queries.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, memory/).
package newsdesk
