// Command flyuxc is the ahead-of-time compiler for the FLYUX scripting
// language (§1, §6.1). All behaviour lives in pkg/cmd; this is a thin
// entry point.
package main

import "github.com/flyuxc/flyuxc/pkg/cmd"

func main() {
	cmd.Execute()
}
