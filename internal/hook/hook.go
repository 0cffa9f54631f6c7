// Package hook implements the UserPromptSubmit hook protocol: the
// hosting assistant pipes a JSON object to stdin, the hook inspects the
// user's prompt, and a JSON verdict goes to stdout. A hook must never
// block the assistant, so Run reports problems inside the JSON payload
// and the process always exits 0.
package hook

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"regexp"

	"github.com/livingtree/grove/internal/prp"
)

// Input is the hook payload. Only the prompt field matters here; the
// host sends more (session id, transcript path) which is ignored.
type Input struct {
	Prompt string `json:"prompt"`
}

// prpPattern extracts a PRP path mentioned anywhere in the prompt,
// e.g. "execute PRPs/auto-draft-settings.md".
var prpPattern = regexp.MustCompile(`PRPs/([^\.]+\.md)`)

// note is the pass-through verdict when the prompt mentions no PRP.
type note struct {
	Valid bool   `json:"valid"`
	Note  string `json:"note"`
}

// Run reads a hook payload from in, validates any referenced PRP, and
// writes the JSON verdict to out. Paths are resolved against root.
// The returned error is for the caller's stderr only; the verdict has
// already been written by then unless decoding itself failed.
func Run(in io.Reader, out io.Writer, root string, minScore int) error {
	payload, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading hook input: %w", err)
	}

	var input Input
	if err := json.Unmarshal(payload, &input); err != nil {
		return fmt.Errorf("parsing hook input: %w", err)
	}

	match := prpPattern.FindString(input.Prompt)
	if match == "" {
		return writeJSON(out, note{Valid: true, Note: "No PRP path found"})
	}

	path := match
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, match)
	}

	report := prp.ValidateFile(path, minScore)
	report.Path = match // report the path as the prompt wrote it
	return writeJSON(out, report)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	return enc.Encode(v)
}
