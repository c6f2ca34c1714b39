package cmd

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/labelkit/labelkit/pkg/registry"
)

var (
	inspectField    string
	inspectValues   []string
	inspectOrganism string
	inspectRecords  bool
)

// inspectCmd partitions values by membership in the local registry.
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Partition values into validated and non-validated",
	Long: `Inspect raw values against a registry field of the local instance and
print the validated / non-validated partition.

Examples:
  labelkit inspect --field label.name --values liver,heart --seed labels.yaml
  labelkit inspect --field gene.symbol --values TP53 --organism human --seed genes.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		field, err := parseField(inspectField)
		if err != nil {
			return err
		}
		instances, err := buildInstances()
		if err != nil {
			return err
		}
		local, err := instances.Default()
		if err != nil {
			return err
		}
		store, err := local.Store(field.Kind)
		if err != nil {
			return err
		}
		result, err := store.Inspect(inspectValues, field, registry.Organism(inspectOrganism))
		if err != nil {
			return err
		}
		if inspectRecords {
			records, err := store.Filter(field, result.Validated, registry.Organism(inspectOrganism))
			if err != nil {
				return err
			}
			out, err := registry.MarshalRecords(records)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		}
		out, err := yaml.Marshal(map[string][]string{
			"validated":     result.Validated,
			"non_validated": result.NonValidated,
		})
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVar(&inspectField, "field", "label.name", "field to inspect against (kind.attr)")
	inspectCmd.Flags().StringSliceVar(&inspectValues, "values", nil, "values to inspect")
	inspectCmd.Flags().StringVar(&inspectOrganism, "organism", "", "organism context for organism-scoped registries")
	inspectCmd.Flags().BoolVar(&inspectRecords, "records", false, "print the full validated records instead of the partition")
	_ = inspectCmd.MarkFlagRequired("values")
}
