// Package threadex exports conversation threads from a web application's
// rendered pages to local Markdown files. It can export the thread that is
// currently open or discover the whole thread library by scrolling a lazily
// loaded listing page.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, fs/).
package threadex
