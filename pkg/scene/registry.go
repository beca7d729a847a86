package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnknownScene is returned when a name matches no built-in scene or scene file
var ErrUnknownScene = errors.New("unknown scene")

// yamlScenePrefix marks discovered scene IDs, e.g. "yaml:bunny"
const yamlScenePrefix = "yaml:"

var builtinScenes = map[string]func() *Scene{
	"default":      NewDefaultScene,
	"lighting":     NewLightingScene,
	"mirror":       NewMirrorScene,
	"trianglemesh": NewTriangleMeshScene,
	"cornell":      NewCornellScene,
	"spheregrid":   NewSphereGridScene,
	"empty":        NewEmptyScene,
}

// BuiltinNames returns the built-in scene names in display order
func BuiltinNames() []string {
	return []string{"default", "lighting", "mirror", "trianglemesh", "cornell", "spheregrid", "empty"}
}

// Create resolves a scene by name. The name may be a built-in scene, a discovered
// scene ID ("yaml:<name>"), the base name of a YAML file in the scenes directory,
// or a path to a YAML file.
func Create(name string) (*Scene, error) {
	if build, ok := builtinScenes[name]; ok {
		return build(), nil
	}

	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		if _, err := os.Stat(name); err == nil {
			return LoadFromFile(name)
		}
	}

	base := strings.TrimPrefix(name, yamlScenePrefix)
	if dir := findScenesDir(); dir != "" {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, base+ext)
			if _, err := os.Stat(path); err == nil {
				return LoadFromFile(path)
			}
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// CreateListed resolves only names that ListAllScenes advertises: a built-in name or
// the ID of a scene file discovered in the scenes directory. Paths are never opened.
func CreateListed(id string) (*Scene, error) {
	if build, ok := builtinScenes[id]; ok {
		return build(), nil
	}

	if strings.HasPrefix(id, yamlScenePrefix) {
		fileScenes, err := ListYAMLScenes()
		if err != nil {
			return nil, err
		}
		for _, info := range fileScenes {
			if info.ID == id {
				return LoadFromFile(info.FilePath)
			}
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// findScenesDir returns the first scenes directory found relative to the working directory
func findScenesDir() string {
	// Try different possible paths for scenes directory
	for _, path := range []string{"scenes", "../scenes"} {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}
