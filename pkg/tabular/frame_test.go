package tabular_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labelkit/labelkit/pkg/tabular"
)

func TestReadFrame(t *testing.T) {
	csv := "tissue,donor\nliver,d1\nheart,d2\n"

	frame, err := tabular.ReadFrame(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, []string{"tissue", "donor"}, frame.Columns())
	assert.Equal(t, 2, frame.Len())

	tissue, ok := frame.Column("tissue")
	require.True(t, ok)
	assert.Equal(t, []string{"liver", "heart"}, tissue)

	_, ok = frame.Column("missing")
	assert.False(t, ok)
}

func TestReadFrameEmptyDocument(t *testing.T) {
	_, err := tabular.ReadFrame(strings.NewReader(""))
	assert.Error(t, err)
}

func TestFrameCopiesInput(t *testing.T) {
	data := map[string][]string{"tissue": {"liver"}}
	frame := tabular.NewFrame([]string{"tissue"}, data)

	data["tissue"][0] = "mutated"
	values, _ := frame.Column("tissue")
	assert.Equal(t, []string{"liver"}, values)
}

func TestMatrix(t *testing.T) {
	obs := tabular.NewFrame([]string{"tissue"}, map[string][]string{
		"tissue": {"liver", "heart", "liver"},
	})
	matrix := tabular.NewMatrix(obs, []string{"TP53", "BRCA1"})

	assert.Equal(t, 3, matrix.NObs())
	assert.Equal(t, []string{"TP53", "BRCA1"}, matrix.Vars())
	assert.Same(t, obs, matrix.Obs())
}
