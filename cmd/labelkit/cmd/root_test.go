package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labelkit/labelkit/pkg/errors"
	"github.com/labelkit/labelkit/pkg/logging"
	"github.com/labelkit/labelkit/pkg/registry"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		flagLogLevel = ""
		flagLogFormat = ""
		flagVerbose = false
		flagQuiet = false
		flagSeeds = nil
		flagUsingSeed = nil
		flagVocab = nil
	})
}

func writeSeed(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func TestParseField(t *testing.T) {
	field, err := parseField("label.name")
	require.NoError(t, err)
	assert.Equal(t, registry.LabelByName(), field)

	field, err = parseField("Gene.symbol")
	require.NoError(t, err)
	assert.Equal(t, registry.GeneBySymbol(), field)

	_, err = parseField("labelname")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	_, err = parseField("widget.name")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestLogLevelPrecedence(t *testing.T) {
	resetFlags(t)

	assert.Equal(t, zerolog.InfoLevel, logLevel())

	flagVerbose = true
	assert.Equal(t, zerolog.DebugLevel, logLevel())

	flagQuiet = true
	assert.Equal(t, zerolog.WarnLevel, logLevel())

	flagLogLevel = "trace"
	assert.Equal(t, zerolog.TraceLevel, logLevel())
}

func TestApplyLogFormat(t *testing.T) {
	resetFlags(t)
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(*original) })

	require.NoError(t, applyLogFormat())

	flagLogFormat = "console"
	require.NoError(t, applyLogFormat())

	flagLogFormat = "json"
	require.NoError(t, applyLogFormat())

	flagLogFormat = "xml"
	err := applyLogFormat()
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestBuildInstancesFromSeeds(t *testing.T) {
	resetFlags(t)
	flagSeeds = []string{writeSeed(t, "kind: label\nrecords:\n  - name: liver\n")}
	flagUsingSeed = []string{"site2=" + writeSeed(t, "kind: label\nrecords:\n  - name: heart\n")}

	instances, err := buildInstances()
	require.NoError(t, err)

	local, err := instances.Default()
	require.NoError(t, err)
	labels, err := local.Store(registry.KindLabel)
	require.NoError(t, err)
	assert.Equal(t, 1, labels.Len())

	site2, err := instances.Get("site2")
	require.NoError(t, err)
	remote, err := site2.Store(registry.KindLabel)
	require.NoError(t, err)
	_, ok := remote.Get(registry.LabelByName(), "heart", nil)
	assert.True(t, ok)
}

func TestBuildInstancesRejectsMalformedUsingSeed(t *testing.T) {
	resetFlags(t)
	flagUsingSeed = []string{"missing-equals-sign"}

	_, err := buildInstances()
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestLoadVocabularyFromFlag(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "tissue.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"entries:\n  - value: brain\n    synonyms: [encephalon]\n"), 0o600))
	flagVocab = []string{"label=" + path}

	vocabs, err := loadVocabularies()
	require.NoError(t, err)
	vocab, ok := vocabs[registry.KindLabel]
	require.True(t, ok)

	entry, found := vocab.Lookup("encephalon", nil)
	require.True(t, found)
	assert.Equal(t, "brain", entry.Value)
}
