package main

import (
	"bufio"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

//LoadCommunityFile reads the community assignment, one "<variable>
//<community>" pair per line. Variable indices and community ids are 0-based.
func (s *Solver) LoadCommunityFile(path string) error {
	fp, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "could not open community file %s", path)
	}
	defer fp.Close()

	in := bufio.NewScanner(fp)
	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		values := strings.Fields(line)
		if len(values) != 2 {
			return errors.Errorf("malformed community line: %q", line)
		}
		v, err := strconv.Atoi(values[0])
		if err != nil {
			return errors.Wrapf(err, "malformed variable in community file: %q", line)
		}
		cmty, err := strconv.Atoi(values[1])
		if err != nil {
			return errors.Wrapf(err, "malformed community in community file: %q", line)
		}
		if v < 0 {
			return errors.Errorf("negative variable in community file: %q", line)
		}
		for v >= s.NumVars() {
			s.NewVar()
		}
		s.Cmtys[v] = cmty
		s.cmtyVarCount[cmty]++
	}
	return errors.Wrapf(in.Err(), "could not read community file %s", path)
}

//LoadCentralityFile reads the per-community betweenness scores, one
//"<community> <score>" pair per line.
//
//The community ids of this file are 1-based while the community file is
//0-based; the scores are re-aligned in initCentrality.
func (s *Solver) LoadCentralityFile(path string) error {
	fp, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "could not open centrality file %s", path)
	}
	defer fp.Close()

	in := bufio.NewScanner(fp)
	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		values := strings.Fields(line)
		if len(values) != 2 {
			return errors.Errorf("malformed centrality line: %q", line)
		}
		cmty, err := strconv.Atoi(values[0])
		if err != nil {
			return errors.Wrapf(err, "malformed community in centrality file: %q", line)
		}
		center, err := strconv.ParseFloat(values[1], 64)
		if err != nil {
			return errors.Wrapf(err, "malformed score in centrality file: %q", line)
		}
		s.cmtyCentrality[cmty] = center
	}
	return errors.Wrapf(in.Err(), "could not read centrality file %s", path)
}

//InitCentrality derives the per-variable community structure once all
//clauses are added and before the search begins: it detects bridge
//variables, projects the community scores onto the variables and marks the
//top tercile as high centrality.
func (s *Solver) InitCentrality() {
	//A variable co-occurring with a variable of another community in some
	//clause bridges the two
	for _, claRef := range s.Clauses {
		c := s.ClaAllocator.GetClause(claRef)
		for j := 0; j < c.Size(); j++ {
			varJ := c.At(j).Var()
			for k := j + 1; k < c.Size(); k++ {
				varK := c.At(k).Var()
				if s.Cmtys[varJ] == s.Cmtys[varK] {
					continue
				}
				if !s.Bridges[varJ] {
					s.cmtyBridgeCount[s.Cmtys[varJ]]++
				}
				if !s.Bridges[varK] {
					s.cmtyBridgeCount[s.Cmtys[varK]]++
				}
				s.Bridges[varJ] = true
				s.Bridges[varK] = true
				s.NumBridges[varJ]++
				s.NumBridges[varK]++
			}
		}
	}

	//The centrality file numbers communities from 1, the community file from
	//0: community c of the centrality file is internal community c-1
	n := s.NumVars()
	for v := 0; v < n; v++ {
		s.Centrality[v] = s.cmtyCentrality[s.Cmtys[v]+1]
	}

	//The top third of the variables, sorted by centrality, gets the
	//preferential bump
	order := make([]Var, n)
	for v := range order {
		order[v] = Var(v)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return s.Centrality[order[i]] < s.Centrality[order[j]]
	})
	for i := n - n/3; i < n; i++ {
		s.Highcenter[order[i]] = true
	}

	nBridges := 0
	nHighcenter := 0
	nMutual := 0
	for v := 0; v < n; v++ {
		if s.Bridges[v] {
			nBridges++
		}
		if s.Highcenter[v] {
			nHighcenter++
			if s.Bridges[v] {
				nMutual++
			}
		}
	}
	logrus.WithFields(logrus.Fields{
		"variables":    n,
		"communities":  len(s.cmtyVarCount),
		"bridges":      nBridges,
		"highcenters":  nHighcenter,
		"mutualbridge": nMutual,
	}).Info("community structure initialized")
}
