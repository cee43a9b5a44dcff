package automatonio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
name: plant
events:
  - name: a
    controllable: true
    observable: true
states:
  - name: s0
    initial: true
  - name: s1
    marked: true
transitions:
  - from: s0
    event: a
    to: s1
acceptance:
  - name: pair1
    r: [s0]
    i: [s1]
`

func TestDecodeRoundTrip(t *testing.T) {
	g, err := Decode([]byte(sampleYAML))
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	assert.Equal(t, "plant", g.Name)
	assert.Len(t, g.StateList(), 2)
	assert.Len(t, g.Transitions(), 1)
	require.Len(t, g.Acceptance.Pairs, 1)
	assert.Equal(t, "pair1", g.Acceptance.Pairs[0].Name)

	out, err := Encode(g)
	require.NoError(t, err)

	g2, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, g.Name, g2.Name)
	assert.Len(t, g2.StateList(), len(g.StateList()))
	assert.Len(t, g2.Transitions(), len(g.Transitions()))
	require.Len(t, g2.Acceptance.Pairs, 1)
}

func TestDecodeRejectsUndeclaredState(t *testing.T) {
	const bad = `
name: g
events:
  - name: a
states:
  - name: s0
    initial: true
transitions:
  - from: s0
    event: a
    to: s1
`
	_, err := Decode([]byte(bad))
	require.Error(t, err)
	var fmtErr *FormatError
	assert.ErrorAs(t, err, &fmtErr)
}

func TestDecodeRejectsMalformedYAML(t *testing.T) {
	_, err := Decode([]byte("not: [valid"))
	require.Error(t, err)
	var fmtErr *FormatError
	assert.ErrorAs(t, err, &fmtErr)
}
