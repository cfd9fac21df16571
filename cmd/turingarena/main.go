// Command turingarena compiles and drives interfaces written in the
// turingarena IDL.
package main

import (
	"os"

	"github.com/turingarena/turingarena/cmd/turingarena/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
