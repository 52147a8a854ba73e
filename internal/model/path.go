package model

// Step records which part of the resolution algorithm produced a match.
type Step string

const (
	StepDirect     Step = "direct"      // Found as given, canonicalized
	StepSearchPath Step = "search-path" // Found under a search directory, emitted as built
)

// Resolution is the outcome of resolving one input.
type Resolution struct {
	Input string // The argument as supplied
	Path  string // The printed result
	Dir   string // Search directory that matched (empty for StepDirect)
	Step  Step
}

// SearchDir represents a single directory of the search path as seen by a lookup.
type SearchDir struct {
	Index       int    // Position in the search path (0-based)
	Value       string // The directory exactly as it appears in the variable
	Exists      bool   // Whether the directory exists
	IsSymlink   bool   // True if the directory itself is a symlink
	Target      string // Canonical location of the directory, if it exists
	Match       string // Candidate path (Value + "/" + name) when it exists
	IsDuplicate bool   // True if an earlier entry has the same Value
	DuplicateOf int    // Index of the earlier entry if this is a duplicate
}

// Matched reports whether the looked-up name exists in this directory.
func (d SearchDir) Matched() bool {
	return d.Match != ""
}

// Lookup contains the survey of every search directory for one name.
type Lookup struct {
	Name    string
	Dirs    []SearchDir
	Matches []int // Indices into Dirs, in search order
}

// First returns the winning match, if any.
func (l Lookup) First() (SearchDir, bool) {
	if len(l.Matches) == 0 {
		return SearchDir{}, false
	}
	return l.Dirs[l.Matches[0]], true
}
