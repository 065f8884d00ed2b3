package command

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cayleygraph/quad"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cayleygraph/ontoeval/clog"
	"github.com/cayleygraph/ontoeval/eval"
	"github.com/cayleygraph/ontoeval/internal/config"
)

const (
	flagMode      = "mode"
	flagFormat    = "format"
	flagRefFormat = "ref_format"
	flagGenFormat = "gen_format"
	flagJSON      = "json"
)

func formatNames() string {
	var names []string
	for _, f := range quad.Formats() {
		if f.Reader != nil {
			names = append(names, f.Name)
		}
	}
	sort.Strings(names)
	return `"` + strings.Join(names, `", "`) + `"`
}

func registerFormatFlags(cmd *cobra.Command) {
	names := formatNames()
	cmd.Flags().String(flagFormat, "", "format used when it cannot be detected from the file extension ("+names+")")
	cmd.Flags().String(flagRefFormat, "", "format of the reference ontology instead of auto-detection")
	cmd.Flags().String(flagGenFormat, "", "format of the generated ontology instead of auto-detection")
}

func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <reference> <generated>",
		Short: "Score a generated ontology against a reference ontology.",
		Long: `Compare loads both ontologies and prints completeness, conciseness and
correctness, followed by element and axiom counts per category.
Files ending in ".gz" or ".bz2" are decompressed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(cmd, map[string]string{
				config.KeyMode:   flagMode,
				config.KeyFormat: flagFormat,
			}); err != nil {
				return err
			}
			cfg, err := config.FromViper(viper.GetViper())
			if err != nil {
				return err
			}
			refFormat, _ := cmd.Flags().GetString(flagRefFormat)
			genFormat, _ := cmd.Flags().GetString(flagGenFormat)
			ref := eval.Source{Path: args[0], Format: refFormat}
			gen := eval.Source{Path: args[1], Format: genFormat}

			start := time.Now()
			m, err := cfg.Evaluator().Evaluate(cmd.Context(), ref, gen)
			if err != nil {
				return err
			}
			clog.Infof("compared %q to %q in %v", args[1], args[0], time.Since(start))

			if asJSON, _ := cmd.Flags().GetBool(flagJSON); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(m)
			}
			return writeMetrics(cmd.OutOrStdout(), m)
		},
	}
	cmd.Flags().String(flagMode, eval.ModeElements.String(), `source of the headline ratios ("elements" or "triples")`)
	cmd.Flags().Bool(flagJSON, false, "print the metrics record as JSON")
	registerFormatFlags(cmd)
	return cmd
}

// writeMetrics prints the headline ratios and the per-category table.
func writeMetrics(w io.Writer, m *eval.Metrics) error {
	fmt.Fprintf(w, "Mode:         %s\n", m.Mode)
	fmt.Fprintf(w, "Completeness: %.4f\n", m.Completeness)
	fmt.Fprintf(w, "Conciseness:  %.4f\n", m.Conciseness)
	fmt.Fprintf(w, "Correctness:  %.4f\n\n", m.Correctness)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tREFERENCE\tGENERATED\tCOMMON\tCOMPLETENESS\tCONCISENESS\tCORRECTNESS")
	for _, r := range m.Breakdown() {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.4f\t%.4f\t%.4f\n",
			r.Name, r.Counts.Reference, r.Counts.Generated, r.Counts.Common,
			r.Scores.Completeness, r.Scores.Conciseness, r.Scores.Correctness)
	}
	return tw.Flush()
}
