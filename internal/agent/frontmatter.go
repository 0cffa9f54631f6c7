package agent

import (
	"fmt"
	"strings"

	"github.com/livingtree/grove/internal/command"
	"gopkg.in/yaml.v3"
)

// parseFrontmatter splits and decodes an agent file. Unlike commands,
// an agent file without frontmatter is an error; the frontmatter IS
// the agent configuration.
func parseFrontmatter(content string) (frontmatter, string, error) {
	var meta frontmatter

	raw, body, ok, err := command.SplitFrontmatter(content)
	if err != nil {
		return meta, "", err
	}
	if !ok {
		return meta, "", fmt.Errorf("agent file has no frontmatter")
	}

	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		return meta, "", fmt.Errorf("parsing frontmatter: %w", err)
	}
	return meta, body, nil
}

// normalizeTools accepts the two shapes the corpus uses for the tools
// key: a YAML list and a comma-separated string.
func normalizeTools(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		var tools []string
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				tools = append(tools, part)
			}
		}
		return tools
	case []any:
		var tools []string
		for _, item := range t {
			s := strings.TrimSpace(fmt.Sprintf("%v", item))
			if s != "" {
				tools = append(tools, s)
			}
		}
		return tools
	default:
		return nil
	}
}
