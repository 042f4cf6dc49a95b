package source

import (
	"strings"
)

// File represents a loaded C/C++ source file
type File struct {
	Path  string
	Text  string
	Lines []string
}

// Parse builds a File from raw bytes.
//
// Lines are split on '\n' only, so a trailing '\r' stays part of its line and
// a text ending with a newline has a final empty line.
func Parse(path string, data []byte) *File {
	return NewFile(path, string(data))
}

// NewFile builds a File from text already in memory.
func NewFile(path, text string) *File {
	return &File{
		Path:  path,
		Text:  text,
		Lines: Lines(text),
	}
}

// Lines splits text the same way Parse does.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}
