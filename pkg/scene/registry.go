package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-skycube-pathtracer/pkg/core"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string // Identifier used on the command line
	DisplayName string // Human-readable name
	Description string
}

type builtin struct {
	description string
	build       func(core.Logger) (*Scene, error)
}

var builtins = map[string]builtin{
	"cornell": {"Closed box lit by a ceiling light, with mirror and glass blocks", NewCornellScene},
	"skylit":  {"Open ground with blocks and no emitters, for cube map lighting", NewSkylitScene},
}

// ListScenes returns the built-in scenes sorted by display name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for id, b := range builtins {
		scenes = append(scenes, SceneInfo{ID: id, DisplayName: titleCase(id), Description: b.description})
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes
}

// Build creates a built-in scene by ID
func Build(id string, logger core.Logger) (*Scene, error) {
	b, ok := builtins[strings.ToLower(id)]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", id)
	}
	return b.build(logger)
}

// titleCase converts "cornell-empty" to "Cornell Empty"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
