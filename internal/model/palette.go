package model

import (
	"hash/fnv"
	"strings"
)

// DefaultColor is used for tasks with no project and no explicit color
const DefaultColor = "#8a8f98"

// palette holds the fixed set of colors project names hash into
var palette = []string{
	"#e06c75", // red
	"#d19a66", // orange
	"#e5c07b", // yellow
	"#98c379", // green
	"#56b6c2", // teal
	"#61afef", // blue
	"#c678dd", // purple
	"#be5046", // dark red
	"#7aa2f7", // periwinkle
	"#9ece6a", // lime
	"#f7768e", // pink
	"#2ac3de", // cyan
}

// ColorForProject maps a project name to a stable palette color.
// The same name always yields the same color; the empty name yields
// DefaultColor.
func ColorForProject(project string) string {
	name := strings.TrimSpace(project)
	if name == "" {
		return DefaultColor
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	return palette[h.Sum32()%uint32(len(palette))]
}
