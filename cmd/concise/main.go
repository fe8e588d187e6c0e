package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oisee/concise/pkg/bench"
	"github.com/oisee/concise/pkg/concise"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "concise",
		Short: "CONCISE compressed bitmap toolkit",
	}

	// make command
	var makeOut string
	var makeWAH bool
	makeCmd := &cobra.Command{
		Use:   "make [element...]",
		Short: "Build a set from integers (args, or stdin one per line) and write its binary form",
		RunE: func(cmd *cobra.Command, args []string) error {
			elems, err := parseElements(args)
			if err != nil {
				return err
			}
			s := concise.New()
			if makeWAH {
				s = concise.NewWAH()
			}
			s.AddMany(elems...)
			if err := writeSet(makeOut, s); err != nil {
				return err
			}
			fmt.Printf("wrote %s: %d elements, %d words\n", makeOut, s.Size(), s.WordCount())
			return nil
		},
	}
	makeCmd.Flags().StringVarP(&makeOut, "out", "o", "set.cns", "Output file")
	makeCmd.Flags().BoolVar(&makeWAH, "wah", false, "Use plain WAH encoding (no flip bits)")
	rootCmd.AddCommand(makeCmd)

	// stats command
	statsCmd := &cobra.Command{
		Use:   "stats FILE",
		Short: "Print size, extrema and compression ratios of a set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readSet(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("file:             %s\n", args[0])
			fmt.Printf("encoding:         %s\n", encodingName(s))
			fmt.Printf("elements:         %d\n", s.Size())
			if !s.IsEmpty() {
				fmt.Printf("first, last:      %d, %d\n", s.First(), s.Last())
			}
			fmt.Printf("words:            %d\n", s.WordCount())
			fmt.Printf("vs dense bitmap:  %.4f\n", s.BitmapCompressionRatio())
			fmt.Printf("vs integer list:  %.4f\n", s.CollectionCompressionRatio())
			return nil
		},
	}
	rootCmd.AddCommand(statsCmd)

	// dump command
	dumpCmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Decode a set word by word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readSet(args[0])
			if err != nil {
				return err
			}
			fmt.Print(s.DebugInfo())
			return nil
		},
	}
	rootCmd.AddCommand(dumpCmd)

	// op command
	var opOut string
	opCmd := &cobra.Command{
		Use:   "op {and|or|xor|andnot} A B",
		Short: "Apply a set operator to two set files",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := readSet(args[1])
			if err != nil {
				return err
			}
			b, err := readSet(args[2])
			if err != nil {
				return err
			}
			var res *concise.Set
			switch args[0] {
			case "and":
				res = a.Intersection(b)
			case "or":
				res = a.Union(b)
			case "xor":
				res = a.SymmetricDifference(b)
			case "andnot":
				res = a.Difference(b)
			default:
				return fmt.Errorf("unknown operator %q", args[0])
			}
			fmt.Printf("%s: %d elements, %d words (operands: %d + %d words)\n",
				args[0], res.Size(), res.WordCount(), a.WordCount(), b.WordCount())
			if opOut != "" {
				if err := writeSet(opOut, res); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", opOut)
			}
			return nil
		},
	}
	opCmd.Flags().StringVarP(&opOut, "out", "o", "", "Write the result to a file")
	rootCmd.AddCommand(opCmd)

	// bench command
	var benchConfig string
	var benchVerbose bool
	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the operator benchmark matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bench.LoadConfig(benchConfig)
			if err != nil {
				return err
			}
			if benchVerbose {
				cfg.Run.Verbose = true
			}
			fmt.Printf("CONCISE benchmark\n")
			fmt.Printf("  Universe: %d\n", cfg.Sets.Universe)
			fmt.Printf("  Densities: %v\n", cfg.Sets.Densities)
			fmt.Printf("  Distributions: %v\n", cfg.Sets.Distributions)
			fmt.Printf("  Operators: %v\n", cfg.Run.Operators)
			fmt.Println()

			table, err := bench.Run(cfg)
			if err != nil {
				return err
			}
			fmt.Print(table.Format())

			if cfg.Run.Checkpoint != "" {
				ckpt := &bench.Checkpoint{Config: *cfg, Results: table.Results()}
				if err := bench.SaveCheckpoint(cfg.Run.Checkpoint, ckpt); err != nil {
					return fmt.Errorf("save checkpoint: %w", err)
				}
				fmt.Printf("\ncheckpoint written to %s\n", cfg.Run.Checkpoint)
			}
			return nil
		},
	}
	benchCmd.Flags().StringVar(&benchConfig, "config", "", "toml configuration file")
	benchCmd.Flags().BoolVarP(&benchVerbose, "verbose", "v", false, "Print progress")
	rootCmd.AddCommand(benchCmd)

	// inspect command
	inspectCmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Browse a set's words interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readSet(args[0])
			if err != nil {
				return err
			}
			return runInspector(args[0], s)
		},
	}
	rootCmd.AddCommand(inspectCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func encodingName(s *concise.Set) string {
	if s.SimulatesWAH() {
		return "WAH"
	}
	return "CONCISE"
}

// parseElements reads integers from args, or from stdin when no args are
// given.
func parseElements(args []string) ([]int, error) {
	if len(args) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			args = append(args, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	elems := make([]int, 0, len(args))
	for _, a := range args {
		e, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid element %q: %w", a, err)
		}
		if e < 0 || e > concise.MaxAllowedInteger {
			return nil, fmt.Errorf("element %d outside [0, %d]", e, concise.MaxAllowedInteger)
		}
		elems = append(elems, e)
	}
	return elems, nil
}

func writeSet(path string, s *concise.Set) error {
	data, err := s.MarshalBinary()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readSet(path string) (*concise.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := concise.New()
	if err := s.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
