package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/turingarena/turingarena/internal/driver"
	"github.com/turingarena/turingarena/internal/errors"
	"github.com/turingarena/turingarena/internal/parser"
	"github.com/turingarena/turingarena/internal/semantic"
)

var (
	evaluateInput   string
	evaluateTimeout time.Duration
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <interface-file> -- <solution-command> [args...]",
	Short: "Drive a solution process against an interface definition",
	Long: `Compile an interface definition and drive the given solution command
against it, feeding it whitespace-separated integers read from --input (or
stdin, if --input is not given) for every "input" statement, and printing
every "output" value, one per line.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().StringVar(&evaluateInput, "input", "", "path to the input file (default: stdin)")
	evaluateCmd.Flags().DurationVar(&evaluateTimeout, "call-timeout", 10*time.Second, "per-call wall-clock budget")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	callTimeout := evaluateTimeout
	if !cmd.Flags().Changed("call-timeout") && cfg.CallTimeout != 0 {
		callTimeout = time.Duration(cfg.CallTimeout)
	}

	interfaceFile := args[0]
	solutionArgs := args[1:]

	source, err := os.ReadFile(interfaceFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", interfaceFile, err)
	}

	def, perr := parser.Parse(string(source))
	if perr != nil {
		se, ok := perr.(errors.SourceError)
		if !ok {
			return perr
		}
		fmt.Fprintln(os.Stderr, errors.New(se, string(source), interfaceFile).Format(false))
		return fmt.Errorf("parsing failed")
	}

	prog, diags := semantic.Lower(def)
	if len(diags) != 0 {
		return fmt.Errorf("interface has %d diagnostic(s); run \"turingarena validate\" for details", len(diags))
	}

	in, err := openInput(evaluateInput)
	if err != nil {
		return err
	}
	defer in.Close()

	values, err := readInts(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	proc, err := driver.StartProcess(ctx, solutionArgs[0], solutionArgs[1:])
	if err != nil {
		return err
	}

	out := &driver.SliceOutput{}
	e := driver.NewEngine(proc.Conn, proc.Out, driver.NewSliceInput(values), out)
	e.CallTimeout = callTimeout

	runErr := e.Run(ctx, prog)
	if runErr != nil {
		_ = proc.Kill()
	}
	closeErr := proc.Close()

	for _, v := range out.Values {
		fmt.Println(v)
	}

	if runErr != nil {
		return fmt.Errorf("evaluation failed: %w", runErr)
	}
	if closeErr != nil {
		return closeErr
	}
	return nil
}

func openInput(path string) (*os.File, error) {
	if path == "" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func readInts(r *os.File) ([]int64, error) {
	var values []int64
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		tok := strings.TrimSpace(scanner.Text())
		if tok == "" {
			continue
		}
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", tok, err)
		}
		values = append(values, v)
	}
	return values, scanner.Err()
}
