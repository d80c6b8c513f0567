package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned by Load for a name that is neither built in nor a file
var ErrUnknownScene = errors.New("unknown scene")

// Scene types
const (
	TypeBuiltin = "builtin"
	TypeFile    = "file"
)

const builtinGroup = "Built-in Scenes"

// SceneInfo describes a selectable scene
type SceneInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Group       string `json:"group"`
	Type        string `json:"type"`     // TypeBuiltin or TypeFile
	FilePath    string `json:"filePath"` // file scenes only
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

type builtin struct {
	info  SceneInfo
	build func(aspect float64) (*Scene, error)
}

var builtins = []builtin{
	{
		info: SceneInfo{
			ID:          "box",
			Name:        "Box",
			DisplayName: "Box",
			Description: "Diffuse room with a glossy sphere, a glass sphere and a spherical light",
			Group:       builtinGroup,
			Type:        TypeBuiltin,
		},
		build: NewBoxScene,
	},
	{
		info: SceneInfo{
			ID:          "showcase",
			Name:        "Showcase",
			DisplayName: "Showcase",
			Description: "Box room with every material, a rotated box and a checkered floor plane",
			Group:       builtinGroup,
			Type:        TypeBuiltin,
		},
		build: NewShowcaseScene,
	},
}

// BuiltinScenes lists the scenes compiled into the binary
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtins))
	for i, b := range builtins {
		infos[i] = b.info
	}
	return infos
}

// Load builds a scene by built-in ID, or from a JSON file when name ends in .json
func Load(name string, aspect float64) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID == name {
			return b.build(aspect)
		}
	}
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return LoadFile(name, aspect)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// ListSceneFiles returns the JSON scenes in dir, sorted by display name.
// A missing directory yields an empty list. Files that cannot be parsed are
// left out of scenes and reported in skipped, one error per file.
func ListSceneFiles(dir string) (scenes []SceneInfo, skipped []error, err error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	for _, path := range files {
		info, err := ParseSceneMetadata(path)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, skipped, nil
}

// ParseSceneMetadata reads the name, description and group of a JSON scene.
// The file name supplies the defaults.
func ParseSceneMetadata(path string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	info := SceneInfo{
		ID:          "file:" + base,
		Name:        titleCase(base),
		DisplayName: titleCase(base),
		Group:       "Scene Files",
		Type:        TypeFile,
		FilePath:    path,
	}

	config, err := ReadFile(path)
	if err != nil {
		return info, err
	}
	if config.Name != "" {
		info.Name = config.Name
		info.DisplayName = config.Name
	}
	if config.Group != "" {
		info.Group = config.Group
	}
	info.Description = config.Description
	return info, nil
}

// ListAllScenes returns built-in and file scenes grouped by category,
// built-ins first and the rest alphabetically. Unreadable scene files are
// returned in skipped as by ListSceneFiles.
func ListAllScenes(dir string) (groups []SceneGroup, skipped []error, err error) {
	files, skipped, err := ListSceneFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	groupMap := make(map[string][]SceneInfo)
	for _, info := range append(BuiltinScenes(), files...) {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	var names []string
	for name := range groupMap {
		if name != builtinGroup {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	names = append([]string{builtinGroup}, names...)

	groups = make([]SceneGroup, 0, len(names))
	for _, name := range names {
		if scenes, ok := groupMap[name]; ok {
			groups = append(groups, SceneGroup{Name: name, Scenes: scenes})
		}
	}
	return groups, skipped, nil
}

// titleCase converts a filename-style string to title case
// e.g., "glass-room" -> "Glass Room"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
