package app

import (
	"os"
	"path/filepath"
)

// Paths holds all resolved filesystem paths for the .kokkai/ project directory.
type Paths struct {
	Project string // project root
	Root    string // .kokkai/
	DB      string // .kokkai/kokkai.db
	Config  string // .kokkai/config.yaml
	EnvFile string // .env in the project root

	LogDir string // .kokkai/log/
	RunLog string // .kokkai/log/runs.log
}

// NewPaths constructs all resolved paths from a project root directory.
func NewPaths(projectRoot string) *Paths {
	root := filepath.Join(projectRoot, ".kokkai")
	return &Paths{
		Project: projectRoot,
		Root:    root,
		DB:      filepath.Join(root, "kokkai.db"),
		Config:  filepath.Join(root, "config.yaml"),
		EnvFile: filepath.Join(projectRoot, ".env"),

		LogDir: filepath.Join(root, "log"),
		RunLog: filepath.Join(root, "log", "runs.log"),
	}
}

// EnsureDirs creates all subdirectories under .kokkai/. Idempotent.
func (p *Paths) EnsureDirs() error {
	for _, d := range []string{p.Root, p.LogDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}
