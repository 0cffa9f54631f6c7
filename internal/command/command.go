// Package command implements the slash-command convention: markdown files
// under .claude/commands/ with optional YAML frontmatter, invoked as
// /namespace:command with user-supplied arguments substituted into the
// body.
//
// A command file's path determines its invocation name:
//
//	.claude/commands/review.md                → /review
//	.claude/commands/development/create-pr.md → /development:create-pr
//
// Frontmatter is delimited by "---" lines, the opening delimiter on the
// first line. Recognized keys: description, allowed-tools, argument-hint,
// model. Unknown keys are collected as warnings rather than errors;
// the corpus predates any schema and lint surfaces them without refusing
// to load.
package command

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter holds the recognized YAML frontmatter keys of a command file.
type Frontmatter struct {
	// Description is a one-line summary shown in listings and used as
	// the MCP prompt description.
	Description string `yaml:"description"`
	// AllowedTools restricts which tools the assistant may use while
	// executing the command. Either a comma-separated string or a list
	// in the source file; normalized to a slice here.
	AllowedTools []string `yaml:"-"`
	// ArgumentHint describes the expected arguments, e.g. "[pr-number]".
	ArgumentHint string `yaml:"argument-hint"`
	// Model pins the command to a model alias (sonnet, opus, haiku).
	Model string `yaml:"model"`
}

// Command is a loaded slash-command definition.
type Command struct {
	// Namespace is the subdirectory under commands/, empty for
	// top-level commands.
	Namespace string
	// Name is the filename stem.
	Name string
	// Meta is the parsed frontmatter; zero value when the file has none.
	Meta Frontmatter
	// Body is the markdown body with frontmatter stripped.
	Body string
	// Path is the source file path, for diagnostics.
	Path string
	// Warnings holds non-fatal issues found while parsing (unknown
	// frontmatter keys, empty body).
	Warnings []string
}

// Invocation returns the name the command is invoked by, e.g.
// "/development:create-pr" or "/review".
func (c *Command) Invocation() string {
	return "/" + c.Key()
}

// Key returns the registry key without the leading slash, e.g.
// "development:create-pr".
func (c *Command) Key() string {
	if c.Namespace == "" {
		return c.Name
	}
	return c.Namespace + ":" + c.Name
}

// recognizedKeys is the frontmatter schema. Anything else is a warning.
var recognizedKeys = map[string]bool{
	"description":   true,
	"allowed-tools": true,
	"argument-hint": true,
	"model":         true,
}

// Parse parses a command file's raw content into frontmatter, body, and
// warnings. Content without frontmatter is valid; the whole document is
// the body. An opening "---" without a closing delimiter is an error.
func Parse(content string) (Frontmatter, string, []string, error) {
	var fm Frontmatter

	raw, body, ok, err := SplitFrontmatter(content)
	if err != nil {
		return fm, "", nil, err
	}
	if !ok {
		return fm, content, warnEmptyBody(content, nil), nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal([]byte(raw), &fields); err != nil {
		return fm, "", nil, fmt.Errorf("parsing frontmatter: %w", err)
	}

	var warnings []string
	for key, value := range fields {
		switch key {
		case "description":
			fm.Description = stringValue(value)
		case "argument-hint":
			fm.ArgumentHint = stringValue(value)
		case "model":
			fm.Model = stringValue(value)
		case "allowed-tools":
			fm.AllowedTools = toolList(value)
		default:
			if !recognizedKeys[key] {
				warnings = append(warnings, fmt.Sprintf("unknown frontmatter key %q", key))
			}
		}
	}

	return fm, body, warnEmptyBody(body, warnings), nil
}

// SplitFrontmatter separates a leading YAML frontmatter block from the
// body. Returns ok=false when the document has no frontmatter. Shared
// with the agent loader, which applies a different schema to the same
// file shape.
func SplitFrontmatter(content string) (raw, body string, ok bool, err error) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, "---\n") && normalized != "---" {
		return "", content, false, nil
	}

	rest := strings.TrimPrefix(normalized, "---\n")
	raw, body, found := splitAtDelimiter(rest)
	if !found {
		return "", "", false, fmt.Errorf("unterminated frontmatter: no closing --- delimiter")
	}
	return raw, body, true, nil
}

// splitAtDelimiter cuts rest at the first line that is exactly "---".
// Lines that merely start with "---" ("----", "---foo") do not
// terminate the block.
func splitAtDelimiter(rest string) (raw, body string, found bool) {
	if rest == "---" || strings.HasPrefix(rest, "---\n") {
		// Empty frontmatter block.
		return "", strings.TrimPrefix(strings.TrimPrefix(rest, "---"), "\n"), true
	}

	offset := 0
	for {
		i := strings.Index(rest[offset:], "\n---")
		if i < 0 {
			return "", "", false
		}
		end := offset + i
		after := end + len("\n---")
		if after == len(rest) || rest[after] == '\n' {
			raw = rest[:end]
			// Drop the newline that followed the closing delimiter.
			body = strings.TrimPrefix(rest[after:], "\n")
			return raw, body, true
		}
		offset = after
	}
}

// stringValue renders a scalar frontmatter value as a string.
func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// toolList normalizes allowed-tools, which the corpus writes both as a
// YAML list and as a comma-separated string.
func toolList(v any) []string {
	switch t := v.(type) {
	case string:
		return splitTools(t)
	case []any:
		var tools []string
		for _, item := range t {
			if s := strings.TrimSpace(stringValue(item)); s != "" {
				tools = append(tools, s)
			}
		}
		return tools
	default:
		return nil
	}
}

func splitTools(s string) []string {
	var tools []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tools = append(tools, part)
		}
	}
	return tools
}

func warnEmptyBody(body string, warnings []string) []string {
	if strings.TrimSpace(body) == "" {
		warnings = append(warnings, "empty command body")
	}
	return warnings
}
