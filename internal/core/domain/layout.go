package domain

import "os"

// Filesystem permissions used for everything bake writes.
const (
	// DirPerm is the permission for created directories.
	DirPerm os.FileMode = 0o755
	// FilePerm is the permission for created files.
	FilePerm os.FileMode = 0o644
)

// ConfigFileName is the packaging descriptor file bake looks for, walking up
// from the repository path.
const ConfigFileName = "bake.yaml"

// ManifestFileName is the default name of the assembled package manifest.
const ManifestFileName = "manifest.yaml"
