// Package audit cross-checks the workspace's documentation against its
// actual contents. READMEs in these corpora like to claim totals ("24
// commands", "12 new + 3 existing = 15 agents") and the claims drift as
// files are added and removed, or contradict each other outright.
//
// The audit flags every stale or conflicting claim with its file and
// line. It never rewrites anything: a count mismatch is a documentation
// defect to surface, and guessing which side is right would hide it.
package audit

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies what a count claim refers to.
type Kind string

const (
	KindCommands Kind = "commands"
	KindAgents   Kind = "agents"
	KindPRPs     Kind = "prps"
)

// Counts holds the actual file counts of a workspace.
type Counts struct {
	Commands int
	Agents   int
	PRPs     int
}

// Get returns the actual count for a kind.
func (c Counts) Get(kind Kind) int {
	switch kind {
	case KindCommands:
		return c.Commands
	case KindAgents:
		return c.Agents
	case KindPRPs:
		return c.PRPs
	}
	return 0
}

// Claim is a numeric assertion found in a document.
type Claim struct {
	Kind  Kind
	Total int
	// Parts holds the addends of an additive claim ("12 new + 3
	// existing = 15"); nil for a plain count.
	Parts []int
	File  string
	Line  int
	Text  string
}

// Finding is one audit result.
type Finding struct {
	// Severity is "error" for claim/actual mismatches and arithmetic
	// defects, "warning" for claims that merely conflict with each other.
	Severity string `json:"severity"`
	Message  string `json:"message"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
}

// claimPattern matches plain count claims like "24 commands",
// "15 custom agents", "9 slash commands". Qualifier words between the
// number and the kind are tolerated.
var claimPattern = regexp.MustCompile(`(?i)\b(\d+)\s+(?:(?:new|existing|custom|total|slash|sub-?)\s+)*(commands?|agents?|subagents?|PRPs?)\b`)

// additivePattern matches additive claims like "12 new + 3 existing = 15".
var additivePattern = regexp.MustCompile(`(?i)\b(\d+)\s+new\s*\+\s*(\d+)\s+existing\s*=\s*(\d+)\b`)

// Run scans the given documents for count claims and checks them against
// the actual counts. Documents that cannot be read are skipped; the
// audit reports on what exists.
func Run(counts Counts, docs []string) []Finding {
	var claims []Claim
	for _, doc := range docs {
		claims = append(claims, scanFile(doc)...)
	}
	return check(counts, claims)
}

// DefaultDocs returns the documents the audit scans: every top-level
// *.md in the workspace root and in .claude/, plus any extra globs.
// Command, agent, and PRP files themselves are not scanned; counting a
// file and scanning it for claims about the count invites recursion.
func DefaultDocs(root string, extraGlobs []string) []string {
	patterns := []string{
		filepath.Join(root, "*.md"),
		filepath.Join(root, ".claude", "*.md"),
	}
	for _, g := range extraGlobs {
		patterns = append(patterns, filepath.Join(root, g))
	}

	seen := map[string]bool{}
	var docs []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue // malformed user glob; skip it
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				docs = append(docs, m)
			}
		}
	}
	sort.Strings(docs)
	return docs
}

// scanFile extracts claims from one document.
func scanFile(path string) []Claim {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	var claims []Claim
	lineNo := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		// Additive claims first; their total would otherwise also match
		// the plain pattern and double-report.
		consumed := map[int]bool{}
		for _, idx := range additivePattern.FindAllStringSubmatchIndex(line, -1) {
			sub := additivePattern.FindStringSubmatch(line[idx[0]:idx[1]])
			kind, ok := kindAfter(line[idx[1]:])
			if !ok {
				continue
			}
			a, _ := strconv.Atoi(sub[1])
			b, _ := strconv.Atoi(sub[2])
			total, _ := strconv.Atoi(sub[3])
			claims = append(claims, Claim{
				Kind:  kind,
				Total: total,
				Parts: []int{a, b},
				File:  path,
				Line:  lineNo,
				Text:  strings.TrimSpace(line[idx[0]:idx[1]]),
			})
			for i := idx[0]; i < idx[1]; i++ {
				consumed[i] = true
			}
		}

		for _, idx := range claimPattern.FindAllStringSubmatchIndex(line, -1) {
			if consumed[idx[0]] {
				continue
			}
			sub := claimPattern.FindStringSubmatch(line[idx[0]:idx[1]])
			n, _ := strconv.Atoi(sub[1])
			claims = append(claims, Claim{
				Kind:  normalizeKind(sub[2]),
				Total: n,
				File:  path,
				Line:  lineNo,
				Text:  strings.TrimSpace(line[idx[0]:idx[1]]),
			})
		}
	}
	return claims
}

// kindAfter finds the kind word following an additive expression, e.g.
// "= 15 agents" leaves " agents" as the remainder.
var kindWordPattern = regexp.MustCompile(`(?i)^\s*(?:(?:new|existing|custom|total|slash|sub-?)\s+)*(commands?|agents?|subagents?|PRPs?)\b`)

func kindAfter(rest string) (Kind, bool) {
	m := kindWordPattern.FindStringSubmatch(rest)
	if m == nil {
		return "", false
	}
	return normalizeKind(m[1]), true
}

func normalizeKind(word string) Kind {
	switch strings.ToLower(strings.TrimSuffix(strings.ToLower(word), "s") + "s") {
	case "commands":
		return KindCommands
	case "agents", "subagents":
		return KindAgents
	case "prps":
		return KindPRPs
	}
	return Kind(strings.ToLower(word))
}

// check turns claims plus actual counts into findings.
func check(counts Counts, claims []Claim) []Finding {
	var findings []Finding

	byKind := map[Kind][]Claim{}
	for _, c := range claims {
		byKind[c.Kind] = append(byKind[c.Kind], c)

		// Additive arithmetic: 12 new + 3 existing = 16 is wrong on its
		// own terms, before comparing with reality.
		if len(c.Parts) > 0 {
			sum := 0
			for _, p := range c.Parts {
				sum += p
			}
			if sum != c.Total {
				findings = append(findings, Finding{
					Severity: "error",
					Message:  fmt.Sprintf("claim %q does not add up: parts sum to %d, total says %d", c.Text, sum, c.Total),
					File:     c.File,
					Line:     c.Line,
				})
			}
		}
	}

	for _, kind := range []Kind{KindCommands, KindAgents, KindPRPs} {
		kindClaims := byKind[kind]
		actual := counts.Get(kind)

		for _, c := range kindClaims {
			if c.Total != actual {
				findings = append(findings, Finding{
					Severity: "error",
					Message:  fmt.Sprintf("%s claims %d %s but the workspace has %d", filepath.Base(c.File), c.Total, kind, actual),
					File:     c.File,
					Line:     c.Line,
				})
			}
		}

		// Mutually conflicting claims are worth a separate warning even
		// when one of them happens to match reality; the documents
		// disagree with each other.
		totals := map[int][]Claim{}
		for _, c := range kindClaims {
			totals[c.Total] = append(totals[c.Total], c)
		}
		if len(totals) > 1 {
			var values []int
			for v := range totals {
				values = append(values, v)
			}
			sort.Ints(values)
			parts := make([]string, len(values))
			for i, v := range values {
				parts[i] = strconv.Itoa(v)
			}
			findings = append(findings, Finding{
				Severity: "warning",
				Message:  fmt.Sprintf("documents disagree on the number of %s: %s", kind, strings.Join(parts, " vs ")),
			})
		}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].File != findings[j].File {
			return findings[i].File < findings[j].File
		}
		return findings[i].Line < findings[j].Line
	})
	return findings
}
