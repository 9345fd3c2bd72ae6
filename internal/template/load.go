package template

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"autovideo/internal/timing"
)

//go:embed assets
var assets embed.FS

// Asset file names, also recognized inside a template override directory.
const (
	primaryPluginAsset = "videos_10.esp"
	driveInPluginAsset = "drivein_10.esp"
)

func meshAsset(role Role, gridCount int) (string, error) {
	compact := gridCount <= timing.CompactGrids
	switch role {
	case RoleTelevision:
		if compact {
			return "tv_8.nif", nil
		}
		return "tv_24.nif", nil
	case RoleProjector:
		if compact {
			return "pr_8.nif", nil
		}
		return "pr_24.nif", nil
	case RoleDriveIn:
		if !compact {
			return "", fmt.Errorf("no drive-in mesh template beyond %d grids", timing.CompactGrids)
		}
		return "di_8.nif", nil
	default:
		return "", fmt.Errorf("unknown mesh role %q", role)
	}
}

// Loader hands out fresh template buffers, preferring files from an
// override directory and falling back to the bundled assets.
type Loader struct {
	dir string
}

// NewLoader returns a loader reading overrides from dir. An empty dir
// serves only the bundled templates.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

func (l *Loader) load(name string) ([]byte, error) {
	if l.dir != "" {
		path := filepath.Join(l.dir, name)
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read template override %s: %w", path, err)
		}
	}
	data, err := assets.ReadFile("assets/" + name)
	if err != nil {
		return nil, fmt.Errorf("bundled template %s: %w", name, err)
	}
	return data, nil
}

// PrimaryPlugin returns a fresh copy of the primary plugin template.
func (l *Loader) PrimaryPlugin() ([]byte, error) {
	return l.load(primaryPluginAsset)
}

// DriveInPlugin returns a fresh copy of the drive-in plugin template.
func (l *Loader) DriveInPlugin() ([]byte, error) {
	return l.load(driveInPluginAsset)
}

// Mesh returns a fresh copy of the mesh template for role, selected by the
// grid family the video occupies.
func (l *Loader) Mesh(role Role, gridCount int) ([]byte, error) {
	name, err := meshAsset(role, gridCount)
	if err != nil {
		return nil, err
	}
	return l.load(name)
}

// ReadPluginFile loads a caller-supplied plugin template. The file must
// exist, be a regular file, and carry the .esp extension in any letter
// case.
func ReadPluginFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("plugin template %s does not exist", path)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("plugin template %s is not a regular file", path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".esp") {
		return nil, fmt.Errorf("plugin template %s does not have an .esp extension", path)
	}
	return os.ReadFile(path)
}
