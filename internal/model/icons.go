package model

// Centralized icons for the lookup views
// Using simple single-width characters for consistent terminal rendering
const (
	IconMatch     = "●" // Name exists in this directory and wins
	IconShadowed  = "○" // Name exists here but an earlier directory wins
	IconDuplicate = "≈" // Almost equal (duplicate entry)
	IconSymlink   = "→" // Right arrow (symlink)
	IconMissing   = "✗" // Thin X (missing directory)
	IconOK        = " " // Space (OK - no icon to reduce noise)
)
