// nasamini serves the NASA open-data tools over MCP (streamable HTTP or stdio) and
// exposes the same tools on a small REST API and the command line.
package main

import (
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes the CLI with args and returns the process exit code.
// Usage errors return 2, runtime failures 1.
func run(args []string, out io.Writer) int {
	return runWith(args, out, os.Stderr)
}

func runWith(args []string, out, errOut io.Writer) int {
	root := newRootCmd(out, errOut)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		_, _ = io.WriteString(errOut, "Error: "+err.Error()+"\n")
		if isUsageError(err) {
			return 2
		}
		return 1
	}
	return 0
}
