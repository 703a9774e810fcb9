//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// smallPage is a config with three sections that fit a 40 row terminal
// only one or two at a time
const smallPage = `
section_gap = 4

[ui]
smooth_scroll = false

[[sections]]
title = "Alpha"
height = 20
body = ["alpha body"]

[[sections]]
title = "Bravo"
height = 20
body = ["bravo body"]

[[sections]]
title = "Charlie"
height = 20
body = ["charlie body"]
`

// CreateTestWorkspace creates a temporary directory the app runs in
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteFile writes contents to name inside the workspace and returns its path
func (tf *TUITestFramework) WriteFile(name, contents string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	path := filepath.Join(tf.workspace, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteConfig writes the small three-section page config
func (tf *TUITestFramework) WriteConfig() (string, error) {
	return tf.WriteFile("screenvoyeur.toml", smallPage)
}
