package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/turingarena/turingarena/internal/errors"
	"github.com/turingarena/turingarena/internal/parser"
	"github.com/turingarena/turingarena/internal/semantic"
)

var validateColor bool

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate an interface definition",
	Long: `Parse and analyze an interface definition, reporting every semantic
diagnostic found.

If no file is provided, reads from stdin. Exit code is 0 if the interface
is valid, non-zero if parsing failed or any diagnostic was found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateColor, "color", isatty.IsTerminal(os.Stdout.Fd()), "colorize diagnostic output (default: auto-detected from the terminal)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	color := validateColor
	if !cmd.Flags().Changed("color") && cfg.Color {
		color = true
	}

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
		ce := errors.New(se, source, file)
		fmt.Fprintln(os.Stderr, ce.Format(color))
		return fmt.Errorf("parsing failed")
	}

	_, diags := semantic.Lower(def)
	if len(diags) == 0 {
		fmt.Println("ok")
		return nil
	}

	var compilerErrs []*errors.CompilerError
	for _, d := range diags {
		compilerErrs = append(compilerErrs, errors.New(d, source, file))
	}
	fmt.Fprintln(os.Stderr, errors.FormatAll(compilerErrs, color))
	return fmt.Errorf("%d diagnostic(s) found", len(diags))
}

func readSource(args []string) (source, file string, err error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), "<stdin>", nil
}
