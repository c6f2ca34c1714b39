// Package cmd implements the labelkit CLI commands.
package cmd

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/labelkit/labelkit/internal/config"
	"github.com/labelkit/labelkit/pkg/errors"
	"github.com/labelkit/labelkit/pkg/logging"
	"github.com/labelkit/labelkit/pkg/reference"
	"github.com/labelkit/labelkit/pkg/registry"
	"github.com/labelkit/labelkit/pkg/registry/memory"
)

var (
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
	flagVerbose   bool
	flagQuiet     bool
	flagSeeds     []string
	flagUsingSeed []string
	flagVocab     []string
)

// rootCmd is the base command of the labelkit CLI.
var rootCmd = &cobra.Command{
	Use:   "labelkit",
	Short: "Reconcile categorical values against typed registries",
	Long: `labelkit reconciles raw categorical values (sample types, gene symbols,
dataframe columns) against typed registries of canonical records, importing
matches from secondary instances or the public reference and reporting
anything unresolvable.

Examples:
  labelkit inspect --field label.name --values liver,heart --seed labels.yaml
  labelkit reconcile --field label.name --feature tissue --values liver,heart \
      --seed labels.yaml --using-seed site2=remote-labels.yaml --using site2
  labelkit register --csv data.csv --description "trial data" \
      --map tissue=label.name --feature-field feature.name`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := config.Init(flagConfig); err != nil {
			return err
		}
		logging.SetVerbosity(logLevel())
		return applyLogFormat()
	},
}

// Execute runs the CLI with the given arguments.
func Execute(args []string) error {
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		logging.Err(err).Msg("command failed")
		return err
	}
	return nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	pf.StringVar(&flagLogFormat, "log-format", "", "log output format (console, json)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "debug output (shortcut for --log-level debug)")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "warnings only (shortcut for --log-level warn)")
	pf.StringSliceVar(&flagSeeds, "seed", nil, "YAML registry seed file for the local instance (repeatable)")
	pf.StringSliceVar(&flagUsingSeed, "using-seed", nil, "name=path YAML seed for a named instance (repeatable)")
	pf.StringSliceVar(&flagVocab, "vocab", nil, "kind=path YAML public reference vocabulary (repeatable)")

	_ = viper.BindPFlag("log-level", pf.Lookup("log-level"))
}

// logLevel resolves the verbosity with explicit --log-level winning over
// the -v/-q shortcuts and the environment.
func logLevel() zerolog.Level {
	levelStr := flagLogLevel
	if levelStr == "" {
		levelStr = config.GetString("log-level")
	}
	if levelStr != "" {
		if level, err := zerolog.ParseLevel(levelStr); err == nil {
			return level
		}
	}
	if flagQuiet {
		return zerolog.WarnLevel
	}
	if flagVerbose {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// applyLogFormat overrides the auto-detected log output format. Must run
// after the verbosity is set, since new loggers inherit the global level.
func applyLogFormat() error {
	switch flagLogFormat {
	case "":
		return nil
	case "console":
		logging.SetDefault(logging.NewConsole())
	case "json":
		logging.SetDefault(logging.NewJSON(nil))
	default:
		return errors.NewValidationError("log-format", flagLogFormat, "expected console or json")
	}
	return nil
}

// buildInstances assembles the instance container from the seed flags.
func buildInstances() (*registry.Instances, error) {
	instances := registry.NewInstances()

	local, err := newInstance(registry.DefaultInstance, flagSeeds)
	if err != nil {
		return nil, err
	}
	instances.Set(local)

	byName := make(map[string][]string)
	for _, spec := range flagUsingSeed {
		name, path, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, errors.NewValidationError("using-seed", spec, "expected name=path")
		}
		byName[name] = append(byName[name], path)
	}
	for name, paths := range byName {
		inst, err := newInstance(name, paths)
		if err != nil {
			return nil, err
		}
		instances.Set(inst)
	}
	return instances, nil
}

// newInstance creates an instance holding a store per kind, binds any
// configured vocabularies, and loads the seed files.
func newInstance(name string, seeds []string) (*registry.Instance, error) {
	vocabs, err := loadVocabularies()
	if err != nil {
		return nil, err
	}
	inst := registry.NewInstance(name)
	for _, kind := range registry.Kinds() {
		var opts []memory.Option
		if vocab, ok := vocabs[kind]; ok {
			opts = append(opts, memory.WithVocabulary(vocab))
		}
		inst.SetStore(memory.New(kind, opts...))
	}
	for _, path := range seeds {
		if err := registry.LoadSeed(inst, path); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// loadVocabularies parses the --vocab kind=path flags.
func loadVocabularies() (map[registry.Kind]reference.Vocabulary, error) {
	vocabs := make(map[registry.Kind]reference.Vocabulary, len(flagVocab))
	for _, spec := range flagVocab {
		kindName, path, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, errors.NewValidationError("vocab", spec, "expected kind=path")
		}
		vocab, err := loadVocabulary(kindName, path)
		if err != nil {
			return nil, err
		}
		vocabs[registry.Kind(kindName)] = reference.Cached(vocab, reference.DefaultTTL)
	}
	return vocabs, nil
}

// parseField parses a field spec of the form kind.attr, e.g. "label.name".
func parseField(spec string) (registry.Field, error) {
	kindName, attr, ok := strings.Cut(spec, ".")
	if !ok {
		return registry.Field{}, errors.NewValidationError("field", spec, "expected kind.attr, e.g. label.name")
	}
	kind := registry.Kind(strings.ToLower(kindName))
	for _, known := range registry.Kinds() {
		if kind == known {
			return registry.NewField(kind, attr), nil
		}
	}
	return registry.Field{}, errors.NewValidationError("field", spec, "unknown registry kind "+kindName)
}
