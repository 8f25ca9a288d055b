package dispatch

import "fmt"

// Usage returns the static help text, with the configured build-tool name
// substituted in. It is markdown so the --render flag can pretty-print it.
func Usage(tool string) string {
	return fmt.Sprintf(`# Build Command Shell

Any command that you would normally type after %[2]s is a valid command here,
and should bring about the same result that running %[3]s would from your
regular command shell.

Special commands:

  * `+"`+ <command>`"+`
    runs the command under every toolchain in the configured toolchain list,
    in order, stopping at the first failure
  * `+"`++ <toolchain> [<command>]`"+`
    runs a command under a specific toolchain. If the command is left off,
    the active toolchain for the shell is changed until the next switch.
  * `+"`< <filename>`"+`
    reads commands from the named file, one per line; empty lines and lines
    starting with # are ignored. Commands are previewed, not executed.
  * `+"`~ <command>`"+`
    only available if %[1]s-watch is installed; re-runs the command whenever
    a source file changes
  * `+"`p <prompt>`"+`
    sets the prompt template; placeholders: {project}, {version}, {toolchain}
  * `+"`help`"+`, `+"`exit`"+`, `+"`quit`"+`

Note: because special commands are matched by prefix, a plain command cannot
start with +, ~ or <.
`, tool, "`"+tool+" `", "`"+tool+" COMMAND`")
}
