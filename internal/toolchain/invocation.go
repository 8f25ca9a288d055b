// Package toolchain locates the toolchain-selector binary and runs build
// commands through it. Every command the shell executes becomes a single
// Invocation: `<selector> run <toolchain> <tool> <args...>`.
package toolchain

// Invocation is one fully-resolved subprocess call. It is built from the
// session state plus a parsed command and consumed immediately; nothing
// retains it.
type Invocation struct {
	// Selector is the path of the toolchain-selector binary.
	Selector string

	// Toolchain is the toolchain name the command runs under.
	Toolchain string

	// Tool is the build-tool binary name handed to the selector.
	Tool string

	// Args are the user-supplied build-tool arguments.
	Args []string

	// Dir is the working directory for the subprocess.
	Dir string
}

// Argv returns the argument vector passed to the selector binary:
// ["run", toolchain, tool, args...].
func (inv Invocation) Argv() []string {
	argv := make([]string, 0, 3+len(inv.Args))
	argv = append(argv, "run", inv.Toolchain, inv.Tool)
	argv = append(argv, inv.Args...)
	return argv
}
