package level

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MetadataFile is the name of the per-difficulty level index.
const MetadataFile = "levels.yaml"

// Metadata is the index kept next to each difficulty folder's level
// files. It records which levels are known solvable so regressions show
// up as diffs in version control.
type Metadata struct {
	Levels []MetaEntry `yaml:"levels"`
}

// MetaEntry describes one level file in the index.
type MetaEntry struct {
	ID          string   `yaml:"id,omitempty"`
	File        string   `yaml:"file"`
	Author      string   `yaml:"author,omitempty"`
	Solved      *bool    `yaml:"solved,omitempty"`
	Difficulty  string   `yaml:"difficulty,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	Description string   `yaml:"description,omitempty"`
}

// LoadMetadata reads a difficulty folder's index file.
func LoadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("metadata: read %s: %w", path, err)
	}
	var meta Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("metadata: parse %s: %w", path, err)
	}
	return &meta, nil
}

// Save writes the index back to disk.
func (m *Metadata) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("metadata: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("metadata: write %s: %w", path, err)
	}
	return nil
}

// Entry returns the index entry for a level file name, or nil.
func (m *Metadata) Entry(file string) *MetaEntry {
	for i := range m.Levels {
		if m.Levels[i].File == file {
			return &m.Levels[i]
		}
	}
	return nil
}

// MarkSolved updates the solved flag for a level file. It reports whether
// the index listed the file at all.
func (m *Metadata) MarkSolved(file string, solved bool) bool {
	entry := m.Entry(file)
	if entry == nil {
		return false
	}
	entry.Solved = &solved
	return true
}

// UpdateSolvedStatus loads the index next to levelPath, flips the solved
// flag for that level, and saves the index. A missing index is not an
// error: not every folder is indexed.
func UpdateSolvedStatus(levelPath string, solved bool) error {
	metaPath := filepath.Join(filepath.Dir(levelPath), MetadataFile)
	if _, err := os.Stat(metaPath); err != nil {
		return nil
	}
	meta, err := LoadMetadata(metaPath)
	if err != nil {
		return err
	}
	if !meta.MarkSolved(filepath.Base(levelPath), solved) {
		return nil
	}
	return meta.Save(metaPath)
}
