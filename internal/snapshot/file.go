package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lzkit/lzkit/internal/session"
)

// filePattern matches exported snapshot files in a snapshot directory.
const filePattern = "discovery_*.json"

// WriteFile writes a snapshot document to path, creating the directory if
// needed.
func WriteFile(path string, doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// ReadFile loads a snapshot document from path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return &doc, nil
}

// Latest returns the newest snapshot file in dir by modification time.
// The second return is false when the directory holds no snapshots.
func Latest(dir string) (string, bool, error) {
	matches, err := filepath.Glob(filepath.Join(dir, filePattern))
	if err != nil {
		return "", false, fmt.Errorf("scanning snapshot directory: %w", err)
	}
	var newest string
	var newestMod int64
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest = path
			newestMod = mod
		}
	}
	if newest == "" {
		return "", false, nil
	}
	return newest, true, nil
}

// DefaultPath returns the conventional snapshot filename for a session.
func DefaultPath(dir, sessionID string) string {
	return filepath.Join(dir, fmt.Sprintf("discovery_%s.json", sessionID))
}

// FileSource loads session state from snapshot files. It implements
// session.SnapshotSource. When Path is set it loads exactly that file;
// otherwise it picks the newest snapshot in Dir.
type FileSource struct {
	Dir  string
	Path string
}

// LoadLatest implements session.SnapshotSource.
func (fs FileSource) LoadLatest(_ context.Context) (*session.Restored, bool, error) {
	path := fs.Path
	if path == "" {
		latest, found, err := Latest(fs.Dir)
		if err != nil || !found {
			return nil, false, err
		}
		path = latest
	}
	doc, err := ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	return doc.Restore(), true, nil
}
