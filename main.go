// The main package for the startup-discovery executable.
package main

import (
	"github.com/JakeFAU/startup-discovery/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
