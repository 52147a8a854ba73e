package model

// Version is the release of the pathtools binaries.
var Version = "0.3.0"

// Release location checked by findinpath --update. Release builds set these
// with -ldflags "-X pathtools/internal/model.RepoOwner=...".
var (
	RepoOwner = "pathtools"
	RepoName  = "pathtools"
)
