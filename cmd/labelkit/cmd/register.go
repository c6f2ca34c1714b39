package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/labelkit/labelkit/pkg/artifact"
	"github.com/labelkit/labelkit/pkg/errors"
	"github.com/labelkit/labelkit/pkg/reconcile"
	"github.com/labelkit/labelkit/pkg/registry"
	"github.com/labelkit/labelkit/pkg/tabular"
)

var (
	registerCSV           string
	registerDescription   string
	registerFeatureField  string
	registerMappings      []string
	registerUsing         string
	registerOrganism      string
	registerValidatedOnly bool
)

// registerCmd registers a tabular dataset as an artifact.
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a CSV dataset as an artifact",
	Long: `Register a CSV dataset: persist an artifact record, reconcile the column
labels against the feature registry, and reconcile each mapped column's
values against its label field.

Examples:
  labelkit register --csv data.csv --description "trial data" \
      --map tissue=label.name --feature-field feature.name --seed labels.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		featureField, err := parseField(registerFeatureField)
		if err != nil {
			return err
		}
		fields := make(map[string]registry.Field, len(registerMappings))
		for _, mapping := range registerMappings {
			column, spec, ok := strings.Cut(mapping, "=")
			if !ok {
				return errors.NewValidationError("map", mapping, "expected column=kind.attr")
			}
			field, err := parseField(spec)
			if err != nil {
				return err
			}
			fields[column] = field
		}

		file, err := os.Open(registerCSV)
		if err != nil {
			return errors.WrapIO("open", registerCSV, err)
		}
		defer func() { _ = file.Close() }()
		frame, err := tabular.ReadFrame(file)
		if err != nil {
			return err
		}

		instances, err := buildInstances()
		if err != nil {
			return err
		}

		opts := []reconcile.Option{
			reconcile.WithUsing(registerUsing),
			reconcile.WithValidatedOnly(registerValidatedOnly),
		}
		if registerOrganism != "" {
			opts = append(opts, reconcile.WithOrganism(registerOrganism))
		}

		registration, err := artifact.New(instances).Register(frame, registerDescription, fields, featureField, opts...)
		if err != nil {
			return err
		}

		linked := make(map[string][]string, len(registration.Labels))
		for column, records := range registration.Labels {
			linked[column] = registry.Values(records, fields[column])
		}
		out, err := yaml.Marshal(map[string]any{
			"artifact": registration.Artifact.UID,
			"features": registration.Features.Buckets(),
			"labels":   linked,
		})
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)

	flags := registerCmd.Flags()
	flags.StringVar(&registerCSV, "csv", "", "CSV file to register")
	flags.StringVar(&registerDescription, "description", "", "artifact description")
	flags.StringVar(&registerFeatureField, "feature-field", "feature.name", "field the column labels validate against")
	flags.StringSliceVar(&registerMappings, "map", nil, "column=kind.attr label mapping (repeatable)")
	flags.StringVar(&registerUsing, "using", "", "secondary instance to consult")
	flags.StringVar(&registerOrganism, "organism", "", "organism context for organism-scoped registries")
	flags.BoolVar(&registerValidatedOnly, "validated-only", true, "report unresolvable values instead of creating placeholders")
	_ = registerCmd.MarkFlagRequired("csv")
	_ = registerCmd.MarkFlagRequired("description")
}
