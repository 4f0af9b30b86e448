package render

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// directives are the global settings a document may declare in its front
// matter.
type directives struct {
	Theme     string `yaml:"theme"`
	Highlight string `yaml:"highlight"`
	Style     string `yaml:"style"`
	Title     string `yaml:"title"`
}

// parseFrontMatter splits a leading YAML block delimited by "---" lines from
// the markdown body. An unterminated block is treated as ordinary markdown.
func parseFrontMatter(src string) (directives, string, error) {
	var d directives
	normalized := strings.ReplaceAll(src, "\r\n", "\n")
	if !strings.HasPrefix(normalized, "---\n") {
		return d, src, nil
	}
	rest := normalized[len("---\n"):]
	end := -1
	bodyStart := 0
	offset := 0
	for _, line := range strings.SplitAfter(rest, "\n") {
		trimmed := strings.TrimRight(line, "\n")
		if trimmed == "---" || trimmed == "..." {
			end = offset
			bodyStart = offset + len(line)
			break
		}
		offset += len(line)
	}
	if end < 0 {
		return d, src, nil
	}
	block := rest[:end]
	if strings.TrimSpace(block) != "" {
		if err := yaml.Unmarshal([]byte(block), &d); err != nil {
			return directives{}, "", fmt.Errorf("front matter: %w", err)
		}
	}
	return d, rest[bodyStart:], nil
}
