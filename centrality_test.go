package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCommunityFile(t *testing.T) {
	s := NewSolver(DefaultOptions())
	for i := 0; i < 4; i++ {
		s.NewVar()
	}
	path := writeTestFile(t, "test.cmty", "0 0\n1 0\n2 1\n3 1\n")
	require.NoError(t, s.LoadCommunityFile(path))

	assert.Equal(t, []int{0, 0, 1, 1}, s.Cmtys)
	assert.Equal(t, 2, s.cmtyVarCount[0])
	assert.Equal(t, 2, s.cmtyVarCount[1])
}

func TestLoadCommunityFileMalformed(t *testing.T) {
	s := NewSolver(DefaultOptions())
	path := writeTestFile(t, "test.cmty", "0 zero\n")
	assert.Error(t, s.LoadCommunityFile(path))
}

func TestLoadCommunityFileMissing(t *testing.T) {
	s := NewSolver(DefaultOptions())
	assert.Error(t, s.LoadCommunityFile(filepath.Join(t.TempDir(), "nope.cmty")))
}

//The community file numbers communities from 0, the centrality file from 1;
//the score of internal community c must come from centrality line c+1.
func TestCentralityOffByOneAlignment(t *testing.T) {
	s := NewSolver(DefaultOptions())
	for i := 0; i < 2; i++ {
		s.NewVar()
	}
	cmty := writeTestFile(t, "test.cmty", "0 0\n1 1\n")
	center := writeTestFile(t, "test.center", "1 0.25\n2 0.75\n")
	require.NoError(t, s.LoadCommunityFile(cmty))
	require.NoError(t, s.LoadCentralityFile(center))
	s.InitCentrality()

	assert.Equal(t, 0.25, s.Centrality[0])
	assert.Equal(t, 0.75, s.Centrality[1])
}

func TestInitCentralityBridges(t *testing.T) {
	s := NewSolver(DefaultOptions())
	for i := 0; i < 3; i++ {
		s.NewVar()
	}
	//x0 and x1 share a clause across communities, x2 stays inside its own
	require.True(t, s.AddClause([]Lit{*NewLit(0, false), *NewLit(1, false)}))
	cmty := writeTestFile(t, "test.cmty", "0 0\n1 1\n2 1\n")
	center := writeTestFile(t, "test.center", "1 0.5\n2 0.5\n")
	require.NoError(t, s.LoadCommunityFile(cmty))
	require.NoError(t, s.LoadCentralityFile(center))
	s.InitCentrality()

	assert.True(t, s.Bridges[0])
	assert.True(t, s.Bridges[1])
	assert.False(t, s.Bridges[2])
	assert.Equal(t, 1, s.NumBridges[0])
	assert.Equal(t, 1, s.cmtyBridgeCount[0])
	assert.Equal(t, 1, s.cmtyBridgeCount[1])
}

func TestInitCentralityTopTercile(t *testing.T) {
	s := NewSolver(DefaultOptions())
	for i := 0; i < 6; i++ {
		s.NewVar()
	}
	cmty := writeTestFile(t, "test.cmty", "0 0\n1 1\n2 2\n3 3\n4 4\n5 5\n")
	center := writeTestFile(t, "test.center", "1 0.1\n2 0.2\n3 0.3\n4 0.4\n5 0.5\n6 0.6\n")
	require.NoError(t, s.LoadCommunityFile(cmty))
	require.NoError(t, s.LoadCentralityFile(center))
	s.InitCentrality()

	//the top third of 6 variables is the two most central ones
	assert.Equal(t, []bool{false, false, false, false, true, true}, s.Highcenter)
}

//A satisfiable instance where only high centrality variables are undecidable
//by propagation: deciding one of them must show up in the counters.
func TestCentralityInfluenceOnDecisions(t *testing.T) {
	s := NewSolver(DefaultOptions())
	for i := 0; i < 6; i++ {
		s.NewVar()
	}
	//x5 occurs in no clause, it can only be assigned by a decision
	require.True(t, s.AddClause([]Lit{*NewLit(0, false), *NewLit(1, false)}))
	require.True(t, s.AddClause([]Lit{*NewLit(2, false), *NewLit(3, false)}))

	cmty := writeTestFile(t, "test.cmty", "0 0\n1 1\n2 2\n3 3\n4 4\n5 5\n")
	center := writeTestFile(t, "test.center", "1 0.1\n2 0.2\n3 0.3\n4 0.4\n5 0.5\n6 0.6\n")
	require.NoError(t, s.LoadCommunityFile(cmty))
	require.NoError(t, s.LoadCentralityFile(center))
	s.InitCentrality()
	require.True(t, s.Highcenter[5])

	status := s.Solve()
	require.Equal(t, LitBoolTrue, status)
	assert.GreaterOrEqual(t, s.Statistics.HighcenterDecisions, uint64(1))
	assert.Less(t, s.Statistics.DecisionCount, s.opts.DecisionWarmup)
}
