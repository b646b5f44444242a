package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

var (
	dirMu sync.RWMutex
	dir   = "prefabs"
)

// SetDir changes the directory checked for on-disk overrides. An empty dir
// disables overrides.
func SetDir(d string) {
	dirMu.Lock()
	dir = d
	dirMu.Unlock()
}

func Dir() string {
	dirMu.RLock()
	defer dirMu.RUnlock()
	return dir
}

// Load returns a prefab, preferring the copy on disk so edits apply without
// a rebuild.
func Load(name string) ([]byte, error) {
	clean := CleanPath(name)
	if data, ok := readDisk(clean); ok {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func LoadScript(name string) ([]byte, error) {
	clean := ScriptKey(name)
	if data, ok := readDisk(clean); ok {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// Names lists the embedded prefab files.
func Names() ([]string, error) {
	return fs.Glob(PrefabsFS, "*.yaml")
}

// CleanPath reduces a path, as given on the command line or reported by the
// watcher, to the prefab name relative to the prefab directory.
func CleanPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if d := Dir(); d != "" {
		prefix := filepath.ToSlash(filepath.Clean(d)) + "/"
		if i := strings.LastIndex(s, prefix); i >= 0 {
			return s[i+len(prefix):]
		}
	}
	return strings.TrimPrefix(s, "./")
}

// ScriptKey is the canonical name of a script: its path under scripts/.
// "autopilot.tengo", "scripts/autopilot.tengo" and a watcher path all map to
// the same key.
func ScriptKey(path string) string {
	s := CleanPath(path)
	s = strings.TrimPrefix(s, "scripts/")
	return "scripts/" + s
}

func readDisk(clean string) ([]byte, bool) {
	d := Dir()
	if d == "" || clean == "" {
		return nil, false
	}
	data, err := os.ReadFile(filepath.Join(d, filepath.FromSlash(clean)))
	if err != nil {
		return nil, false
	}
	return data, true
}
