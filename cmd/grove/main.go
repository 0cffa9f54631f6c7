// grove: workspace server and toolkit for AI-assisted projects.
//
// A grove workspace is a project carrying .claude/commands/ slash
// commands, .claude/agents/ subagent definitions, and PRPs/ planning
// documents. grove validates them, audits the docs that describe them,
// indexes them for search, and serves them over MCP.
package main

func main() {
	Execute()
}
