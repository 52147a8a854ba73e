package dispatch

import "fmt"

// SearchUsage returns the usage text of the search dispatcher.
func SearchUsage(name string) string {
	return fmt.Sprintf(`Usage: %[1]s <directory> <fileFilter> <searchTerm>

Searches every file under directory whose name matches fileFilter
for lines containing searchTerm.

Example:
  %[1]s dsv '*.py' PermissionError
      directory='dsv' fileFilter='*.py' searchTerm='PermissionError'
`, name)
}

// ListUsage returns the usage text of the list dispatcher.
func ListUsage(name string) string {
	return fmt.Sprintf(`Usage: %[1]s <directory> <fileFilter> [excludeRegex]

Lists entries under directory whose name matches fileFilter, skipping
any path matched by excludeRegex (default %[2]q matches nothing).

Example:
  %[1]s ~/src '*.go' '.*/vendor'
`, name, DefaultExclude)
}
