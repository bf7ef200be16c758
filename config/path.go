package config

import (
	"strconv"
	"strings"
)

// Path is a dot-separated parameter key.
type Path string

// NewPath builds a Path from its segments.
func NewPath(segments ...string) Path {
	return Path(strings.Join(segments, "."))
}

// Push returns the path extended by one segment.
func (p Path) Push(segment string) Path {
	if p == "" {
		return Path(segment)
	}
	return Path(string(p) + "." + segment)
}

// PushIndex returns the path extended by a numeric segment.
func (p Path) PushIndex(i int) Path {
	return p.Push(strconv.Itoa(i))
}

// Pop returns the path without its last segment.
func (p Path) Pop() Path {
	i := strings.LastIndex(string(p), ".")
	if i < 0 {
		return ""
	}
	return p[:i]
}

// Last returns the final segment of the path.
func (p Path) Last() string {
	i := strings.LastIndex(string(p), ".")
	return string(p[i+1:])
}

func (p Path) String() string { return string(p) }
