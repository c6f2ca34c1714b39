package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labelkit/labelkit/pkg/errors"
	"github.com/labelkit/labelkit/pkg/reference"
	"github.com/labelkit/labelkit/pkg/registry"
	"github.com/labelkit/labelkit/pkg/registry/memory"
)

func labelStore(t *testing.T, names ...string) *memory.Store {
	t.Helper()
	attrs := make([]map[string]string, 0, len(names))
	for _, name := range names {
		attrs = append(attrs, map[string]string{registry.AttrName: name})
	}
	return memory.Seed(registry.KindLabel, attrs)
}

func TestInspectPartitionsDistinctValues(t *testing.T) {
	store := labelStore(t, "liver", "heart")

	result, err := store.Inspect(
		[]string{"liver", "liver", "brain", "heart", "brain"},
		registry.LabelByName(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"liver", "heart"}, result.Validated)
	assert.Equal(t, []string{"brain"}, result.NonValidated)
	assert.Equal(t, 3, result.Len())
}

func TestInspectRejectsMismatchedField(t *testing.T) {
	store := labelStore(t)

	_, err := store.Inspect([]string{"x"}, registry.GeneBySymbol(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestSaveUpsertsOnIdentityValue(t *testing.T) {
	store := labelStore(t)

	first := registry.NewRecord(registry.KindLabel, map[string]string{registry.AttrName: "liver"})
	second := registry.NewRecord(registry.KindLabel, map[string]string{registry.AttrName: "liver"})

	stored, err := store.Save(first)
	require.NoError(t, err)
	assert.Equal(t, 1, stored)

	stored, err = store.Save(second)
	require.NoError(t, err)
	assert.Equal(t, 1, stored)

	// repeating the save for the same logical value never double-inserts
	assert.Equal(t, 1, store.Len())

	got, ok := store.Get(registry.LabelByName(), "liver", nil)
	require.True(t, ok)
	assert.Equal(t, second.UID, got.UID)
}

func TestSaveRejectsRecordWithoutIdentity(t *testing.T) {
	store := labelStore(t)

	_, err := store.Save(registry.NewRecord(registry.KindLabel, map[string]string{"color": "red"}))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestSaveReadOnly(t *testing.T) {
	store := memory.New(registry.KindLabel, memory.WithReadOnly())

	_, err := store.Save(registry.NewRecord(registry.KindLabel, map[string]string{registry.AttrName: "liver"}))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrReadOnly)
}

func TestOrganismScopedLookup(t *testing.T) {
	store := memory.Seed(registry.KindGene, []map[string]string{
		{registry.AttrSymbol: "TP53", "organism": "human"},
		{registry.AttrSymbol: "Trp53", "organism": "mouse"},
	})

	result, err := store.Inspect([]string{"TP53", "Trp53"}, registry.GeneBySymbol(), registry.Organism("human"))
	require.NoError(t, err)
	assert.Equal(t, []string{"TP53"}, result.Validated)
	assert.Equal(t, []string{"Trp53"}, result.NonValidated)

	// the same symbol can exist once per organism
	assert.Equal(t, 2, store.Len())
}

func TestFilterPreservesOrderAndSkipsMisses(t *testing.T) {
	store := labelStore(t, "liver", "heart", "brain")

	records, err := store.Filter(registry.LabelByName(), []string{"brain", "missing", "liver"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"brain", "liver"}, registry.Values(records, registry.LabelByName()))
}

func TestFromValuesMaterializesExistingAndConstructs(t *testing.T) {
	vocab := reference.New("tissue",
		reference.Entry{Value: "brain", Attrs: map[string]string{"ontology_id": "UBERON:0000955"}},
	)
	store := memory.New(registry.KindLabel, memory.WithVocabulary(vocab))
	_, err := store.Save(registry.NewRecord(registry.KindLabel, map[string]string{registry.AttrName: "liver"}))
	require.NoError(t, err)

	records, err := store.FromValues([]string{"liver", "brain", "nonsense"}, registry.LabelByName(), nil)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "liver", records[0].Value(registry.LabelByName()))
	assert.Equal(t, "brain", records[1].Value(registry.LabelByName()))
	assert.Equal(t, "UBERON:0000955", records[1].Attr("ontology_id"))

	// constructed records are not persisted until saved
	assert.Equal(t, 1, store.Len())
}

func TestFromValuesKeepsRawValueForSynonyms(t *testing.T) {
	vocab := reference.New("tissue",
		reference.Entry{Value: "brain", Synonyms: []string{"encephalon"}},
	)
	store := memory.New(registry.KindLabel, memory.WithVocabulary(vocab))

	records, err := store.FromValues([]string{"encephalon"}, registry.LabelByName(), nil)
	require.NoError(t, err)
	require.Len(t, records, 1)

	// the raw queried value stays under the field attribute so the
	// caller's partition arithmetic stays exact
	assert.Equal(t, "encephalon", records[0].Value(registry.LabelByName()))
	assert.Equal(t, "brain", records[0].Attr("canonical"))
}

func TestFromValuesWithoutVocabulary(t *testing.T) {
	store := labelStore(t, "liver")
	assert.False(t, store.HasReference())

	records, err := store.FromValues([]string{"liver", "brain"}, registry.LabelByName(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"liver"}, registry.Values(records, registry.LabelByName()))
}

func TestHierarchyLinksAreIdempotent(t *testing.T) {
	store := labelStore(t, "liver", "heart", "is_tissue")

	parent, ok := store.Get(registry.LabelByName(), "is_tissue", nil)
	require.True(t, ok)
	children, err := store.Filter(registry.LabelByName(), []string{"liver", "heart"}, nil)
	require.NoError(t, err)

	require.NoError(t, store.AddChildren(parent, children...))
	// re-linking an already linked child is a no-op, not an error
	require.NoError(t, store.AddChildren(parent, children[0]))

	linked, err := store.Children(parent)
	require.NoError(t, err)
	assert.Len(t, linked, 2)
}

func TestHierarchyRequiresCapableKind(t *testing.T) {
	store := memory.Seed(registry.KindFeature, []map[string]string{{registry.AttrName: "tissue"}})
	parent, ok := store.Get(registry.FeatureByName(), "tissue", nil)
	require.True(t, ok)

	err := store.AddChildren(parent)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestHierarchySurvivesUpsert(t *testing.T) {
	store := labelStore(t, "liver", "is_tissue")

	parent, _ := store.Get(registry.LabelByName(), "is_tissue", nil)
	child, _ := store.Get(registry.LabelByName(), "liver", nil)
	require.NoError(t, store.AddChildren(parent, child))

	// upserting the child under a new UID keeps the link
	replacement := registry.NewRecord(registry.KindLabel, map[string]string{registry.AttrName: "liver"})
	_, err := store.Save(replacement)
	require.NoError(t, err)

	linked, err := store.Children(parent)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, replacement.UID, linked[0].UID)
}

func TestWritesCounter(t *testing.T) {
	store := labelStore(t)
	assert.EqualValues(t, 0, store.Writes())

	_, err := store.Save(registry.NewRecord(registry.KindLabel, map[string]string{registry.AttrName: "liver"}))
	require.NoError(t, err)
	assert.EqualValues(t, 1, store.Writes())
}

func TestStoreReturnsClones(t *testing.T) {
	store := labelStore(t, "liver")

	got, ok := store.Get(registry.LabelByName(), "liver", nil)
	require.True(t, ok)
	got.Attrs[registry.AttrName] = "mutated"

	again, ok := store.Get(registry.LabelByName(), "liver", nil)
	require.True(t, ok)
	assert.Equal(t, "liver", again.Value(registry.LabelByName()))
}
