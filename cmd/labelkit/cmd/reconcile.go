package cmd

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/labelkit/labelkit/pkg/reconcile"
	"github.com/labelkit/labelkit/pkg/registry"
)

var (
	reconcileField         string
	reconcileValues        []string
	reconcileFeature       string
	reconcileUsing         string
	reconcileOrganism      string
	reconcileValidatedOnly bool
)

// reconcileCmd runs the full reconciliation flow for a set of values.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile values against the local registry",
	Long: `Reconcile raw values against a registry field: values already present are
reported as validated, the rest are imported from the secondary instance or
the public reference where possible, and the remainder is either registered
as placeholder records or only reported, depending on --validated-only.

Examples:
  labelkit reconcile --field label.name --feature tissue --values liver,heart \
      --seed labels.yaml --using-seed site2=remote.yaml --using site2
  labelkit reconcile --field gene.symbol --feature var --values TP53,BRCA1 \
      --organism human --vocab gene=ensembl.yaml --seed genes.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		field, err := parseField(reconcileField)
		if err != nil {
			return err
		}
		instances, err := buildInstances()
		if err != nil {
			return err
		}

		opts := []reconcile.Option{
			reconcile.WithUsing(reconcileUsing),
			reconcile.WithValidatedOnly(reconcileValidatedOnly),
		}
		if reconcileOrganism != "" {
			opts = append(opts, reconcile.WithOrganism(reconcileOrganism))
		}

		result, err := reconcile.New(instances).Reconcile(reconcileValues, field, reconcileFeature, opts...)
		if err != nil {
			return err
		}

		report := map[string]any{
			"validated": result.Validated,
		}
		for key, values := range result.Buckets() {
			report[key] = values
		}
		if result.Parent != nil {
			report["parent"] = result.Parent.Value(registry.NewField(field.Kind, registry.AttrName))
		}
		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	flags := reconcileCmd.Flags()
	flags.StringVar(&reconcileField, "field", "label.name", "field to reconcile against (kind.attr)")
	flags.StringSliceVar(&reconcileValues, "values", nil, "values to reconcile")
	flags.StringVar(&reconcileFeature, "feature", "", "feature the values are used under")
	flags.StringVar(&reconcileUsing, "using", "", "secondary instance to consult")
	flags.StringVar(&reconcileOrganism, "organism", "", "organism context for organism-scoped registries")
	flags.BoolVar(&reconcileValidatedOnly, "validated-only", true, "report unresolvable values instead of creating placeholders")
	_ = reconcileCmd.MarkFlagRequired("values")
	_ = reconcileCmd.MarkFlagRequired("feature")
}
