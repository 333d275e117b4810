package wfc_test

import (
	"testing"

	"github.com/hborlik/scwfc/graph"
	"github.com/hborlik/scwfc/wfc"
	"github.com/stretchr/testify/require"
)

const (
	classA int64 = 10
	classB int64 = 11
	patA   int64 = 100
	patB   int64 = 101
)

func patterns() map[int64]wfc.Pattern {
	return map[int64]wfc.Pattern{
		patA: {ClassID: classA, RequiredClasses: []int64{classB, classB}, Weight: 1},
		patB: {ClassID: classB, RequiredClasses: []int64{classA}, Weight: 1},
	}
}

func fullDomain(pats map[int64]wfc.Pattern) []wfc.Val {
	out := make([]wfc.Val, 0, len(pats))
	for pid, p := range pats {
		out = append(out, wfc.Val{ClassID: p.ClassID, PatternID: pid})
	}
	return out
}

// TestTwoPatternChain mirrors spec scenario 1: a path A-B-A must converge
// on (A, B, A) after a full solve.
func TestTwoPatternChain(t *testing.T) {
	g := graph.New[*wfc.DomainNode]()
	pats := patterns()
	solver := wfc.New(g, pats, 42)

	n1 := &wfc.DomainNode{ID: 1, Domain: fullDomain(pats)}
	n2 := &wfc.DomainNode{ID: 2, Domain: fullDomain(pats)}
	n3 := &wfc.DomainNode{ID: 3, Domain: fullDomain(pats)}
	solver.AddNode(n1)
	solver.AddNode(n2)
	solver.AddNode(n3)
	require.NoError(t, g.AddEdge(1, 2, 1))
	require.NoError(t, g.AddEdge(2, 3, 1))

	for i := 0; i < 50 && (len(n1.Domain) > 1 || len(n2.Domain) > 1 || len(n3.Domain) > 1); i++ {
		if len(n1.Domain) > 1 {
			solver.Step(1)
		}
		if len(n2.Domain) > 1 {
			solver.Step(2)
		}
		if len(n3.Domain) > 1 {
			solver.Step(3)
		}
	}

	require.Len(t, n1.Domain, 1)
	require.Len(t, n2.Domain, 1)
	require.Len(t, n3.Domain, 1)
	require.Equal(t, classA, n1.Domain[0].ClassID)
	require.Equal(t, classB, n2.Domain[0].ClassID)
	require.Equal(t, classA, n3.Domain[0].ClassID)
}

func TestUpdateDomainShrinksOnInvalidRequirement(t *testing.T) {
	g := graph.New[*wfc.DomainNode]()
	pats := patterns()
	solver := wfc.New(g, pats, 7)

	n1 := &wfc.DomainNode{ID: 1, Domain: []wfc.Val{{ClassID: classA, PatternID: patA}}}
	n2 := &wfc.DomainNode{ID: 2, Domain: []wfc.Val{{ClassID: classB, PatternID: patB}, {ClassID: classA, PatternID: patA}}}
	solver.AddNode(n1)
	solver.AddNode(n2)
	require.NoError(t, g.AddEdge(1, 2, 1))

	// n2's patB requires classA among neighbors; n1 provides it.
	// n2's patA requires a classB neighbor; n1 holds only classA, so patA goes.
	shrank := solver.UpdateDomain(2)
	require.True(t, shrank)
	require.Len(t, n2.Domain, 1)
	require.Equal(t, classB, n2.Domain[0].ClassID)
}

func TestNodeEntropyZeroWhenSolved(t *testing.T) {
	g := graph.New[*wfc.DomainNode]()
	pats := patterns()
	solver := wfc.New(g, pats, 1)
	n1 := &wfc.DomainNode{ID: 1, Domain: []wfc.Val{{ClassID: classA, PatternID: patA}}}
	solver.AddNode(n1)

	require.Equal(t, 0.0, solver.NodeEntropy(1))
}

func TestWeightedPickDomainMatchesWeights(t *testing.T) {
	pats := map[int64]wfc.Pattern{
		1: {ClassID: 1, Weight: 3},
		2: {ClassID: 2, Weight: 1},
	}
	g := graph.New[*wfc.DomainNode]()
	solver := wfc.New(g, pats, 99)
	n1 := &wfc.DomainNode{ID: 1, Domain: []wfc.Val{{ClassID: 1, PatternID: 1}, {ClassID: 2, PatternID: 2}}}
	solver.AddNode(n1)

	const trials = 4000
	var countClass1 int
	for i := 0; i < trials; i++ {
		n1.Domain = []wfc.Val{{ClassID: 1, PatternID: 1}, {ClassID: 2, PatternID: 2}}
		v, ok := solver.WeightedPickDomain(1)
		require.True(t, ok)
		if v.ClassID == 1 {
			countClass1++
		}
	}
	frac := float64(countClass1) / trials
	require.InDelta(t, 0.75, frac, 0.05)
}

func TestWeightedPickDomainFallsBackToUniform(t *testing.T) {
	pats := map[int64]wfc.Pattern{
		1: {ClassID: 1, Weight: 0},
		2: {ClassID: 2, Weight: 0},
	}
	g := graph.New[*wfc.DomainNode]()
	solver := wfc.New(g, pats, 3)
	n1 := &wfc.DomainNode{ID: 1, Domain: []wfc.Val{{ClassID: 1, PatternID: 1}, {ClassID: 2, PatternID: 2}}}
	solver.AddNode(n1)

	v, ok := solver.WeightedPickDomain(1)
	require.True(t, ok)
	require.Contains(t, []int64{1, 2}, v.ClassID)
}
