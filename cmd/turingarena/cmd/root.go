package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "turingarena",
	Short: "IDL compiler and bidirectional driver",
	Long: `turingarena compiles an interface definition (IDL) into a validated,
lowered program, and can drive it against a live solution process over the
line-oriented wire protocol.

Out of core scope: template/skeleton code generation for specific
languages, sandboxing, and installation management. Those surfaces are
documented but not implemented here.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
