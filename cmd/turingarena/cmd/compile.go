package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turingarena/turingarena/internal/errors"
	"github.com/turingarena/turingarena/internal/parser"
	"github.com/turingarena/turingarena/internal/semantic"
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile an interface definition and dump its lowered steps",
	Long: `Parse, analyze, and lower an interface definition, printing the grouped
Steps of its main block. Fails with the same diagnostics as "validate" if
the interface is not semantically valid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	source, file, err := readSource(args)
	if err != nil {
		return err
	}

	def, perr := parser.Parse(source)
	if perr != nil {
		se, ok := perr.(errors.SourceError)
		if !ok {
			return perr
		}
		fmt.Fprintln(os.Stderr, errors.New(se, source, file).Format(false))
		return fmt.Errorf("parsing failed")
	}

	prog, diags := semantic.Lower(def)
	if len(diags) != 0 {
		var compilerErrs []*errors.CompilerError
		for _, d := range diags {
			compilerErrs = append(compilerErrs, errors.New(d, source, file))
		}
		fmt.Fprintln(os.Stderr, errors.FormatAll(compilerErrs, false))
		return fmt.Errorf("%d diagnostic(s) found", len(diags))
	}

	fmt.Printf("methods: %d, constants: %d, main steps: %d\n",
		len(prog.Methods), len(prog.Constants), len(prog.MainSteps))
	for i, step := range prog.MainSteps {
		fmt.Printf("step %d [%s]:\n", i, step.Direction)
		for _, node := range step.Nodes {
			fmt.Printf("  - %s\n", node.Statement)
		}
	}
	return nil
}
