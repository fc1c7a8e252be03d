package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Scene types reported by discovery
const (
	TypeBuiltin = "builtin"
	TypeFile    = "json"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the scene document (json type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtinGroup = "Built-in Scenes"

var builtinDescriptions = map[string]string{
	"default":    "Matte, mirror and glass spheres with a triangle on a floor",
	"cylinders":  "Open cylinders in several orientations",
	"spheregrid": "20x20 grid of colored spheres",
	"binary":     "Hit mask of the default scene",
}

// sceneMetadata holds the optional descriptive keys of a scene document
type sceneMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Group       string `json:"group"`
}

// ListFileScenes scans dir for *.json scene documents. A missing directory yields no scenes.
func ListFileScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			logger.Warningf("failed to read metadata for %s: %v", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseSceneMetadata reads the descriptive keys of a scene document,
// falling back to values derived from the file name
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:       TypeFile + ":" + nameWithoutExt,
		Name:     titleCase(nameWithoutExt),
		Group:    "Scene Files",
		Type:     TypeFile,
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, err
	}

	var meta sceneMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return info, err
	}
	if meta.Name != "" {
		info.Name = meta.Name
	}
	if meta.Group != "" {
		info.Group = meta.Group
	}
	info.Description = meta.Description

	return info, nil
}

// ListAllScenes returns built-in scenes and the documents found in dir, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	allScenes := make([]SceneInfo, 0)
	for _, name := range BuiltinNames() {
		allScenes = append(allScenes, SceneInfo{
			ID:          name,
			Name:        titleCase(name),
			Description: builtinDescriptions[name],
			Group:       builtinGroup,
			Type:        TypeBuiltin,
		})
	}

	fileScenes, err := ListFileScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}
	allScenes = append(allScenes, fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	var groupNames []string
	for _, info := range allScenes {
		if _, seen := groupMap[info.Group]; !seen && info.Group != builtinGroup {
			groupNames = append(groupNames, info.Group)
		}
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}
	sort.Strings(groupNames)

	// Built-in scenes first, then alphabetical
	if group, ok := groupMap[builtinGroup]; ok {
		response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: group})
	}
	for _, name := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: name, Scenes: groupMap[name]})
	}

	return response, nil
}

// Load resolves a scene id: a built-in name, "json:<name>" for a document in
// dir, or a path to a document
func Load(id, dir string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	if _, ok := builtins[id]; ok {
		return NewBuiltin(id, cameraOverrides...)
	}

	path := id
	if name, ok := strings.CutPrefix(id, TypeFile+":"); ok {
		path = filepath.Join(dir, name+".json")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}

	s, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if len(cameraOverrides) > 0 {
		s.CameraConfig = mergeCameraConfig(s.CameraConfig, cameraOverrides)
		s.SetResolution(s.CameraConfig.Width, s.CameraConfig.Height)
	}
	return s, nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
