package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dbnet/causal"
	"github.com/katalvlaran/dbnet/modelfile"
)

func newCPTCmd(a *app) *cobra.Command {
	var (
		model    string
		variable int
	)

	cmd := &cobra.Command{
		Use:   "cpt",
		Short: "Print the compiled conditional probability table of one variable",
		Long: `Print every entry of a variable's conditional probability table. Each row
shows the power-set index in binary (first cause leftmost), the active causes,
the probability, and whether it was elicited or derived by Noisy-OR / RNOR.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := modelfile.Load(model)
			if err != nil {
				return err
			}
			a.log.Debug("loaded model", "model", g.Name(), "variables", g.Len())

			return writeCPT(cmd.OutOrStdout(), g, variable)
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "model file (YAML)")
	cmd.Flags().IntVarP(&variable, "variable", "v", 0, "variable id")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("variable")

	return cmd
}

func writeCPT(w io.Writer, g *causal.Graph, id int) error {
	v, err := g.Variable(id)
	if err != nil {
		return err
	}
	table, err := v.PreviewCPT()
	if err != nil {
		return err
	}

	causes := v.Causes()
	names := make([]string, len(causes))
	for k, c := range causes {
		cv, err := g.Variable(c)
		if err != nil {
			return err
		}
		names[k] = cv.Name()
	}

	fmt.Fprintf(w, "%s (id %d), causes: %s\n", v.Name(), v.ID(), joinOr(names, "none"))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tBITS\tACTIVE\tP\tSOURCE")
	n := len(causes)
	for idx, p := range table {
		var active []string
		for k := range causes {
			if idx&causal.SingletonIndex(k, n) != 0 {
				active = append(active, names[k])
			}
		}
		source := "derived"
		if _, ok := v.Elicitation(idx); ok {
			source = "elicited"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.4f\t%s\n", idx, bits(idx, n), joinOr(active, "leak"), p, source)
	}

	return tw.Flush()
}

// bits renders idx as n binary digits, or "-" when there are no causes.
func bits(idx, n int) string {
	if n == 0 {
		return "-"
	}

	return fmt.Sprintf("%0*b", n, idx)
}

func joinOr(s []string, empty string) string {
	if len(s) == 0 {
		return empty
	}

	return strings.Join(s, "+")
}
