package main

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

func readClause(line string, s *Solver) (lits []Lit, err error) {
	values := strings.Fields(line)
	if len(values) == 0 || values[len(values)-1] != "0" {
		return nil, errors.Errorf("PARSE ERROR! The end of clause is not 0: %s", line)
	}
	for i := 0; i < len(values)-1; i++ {
		parsedValue, err := strconv.Atoi(values[i])
		if err != nil {
			return nil, errors.Wrapf(err, "PARSE ERROR! Not a literal: %s", values[i])
		}
		if parsedValue == 0 {
			return nil, errors.Errorf("PARSE ERROR! A clause terminates early: %s", line)
		}

		value := parsedValue
		neg := false
		if parsedValue > 0 {
			value--
		} else {
			neg = true
			value *= -1
			value--
		}

		for value >= s.NumVars() {
			s.NewVar()
		}

		lit := NewLit(Var(value), neg)
		lits = append(lits, *lit)
	}

	return lits, nil
}

func parseDimacs(in *bufio.Scanner, s *Solver) (err error) {
	vars := 0
	clauses := 0
	cnt := 0
	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		//skip comment and empty lines
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		if strings.HasPrefix(line, "p cnf") {
			values := strings.Fields(line)
			if len(values) != 4 {
				return errors.Errorf("PARSE ERROR! The problem line is malformed: %s", line)
			}
			vars, err = strconv.Atoi(values[2])
			if err != nil {
				return errors.Wrap(err, "PARSE ERROR! The number of variables is malformed")
			}
			clauses, err = strconv.Atoi(values[3])
			if err != nil {
				return errors.Wrap(err, "PARSE ERROR! The number of clauses is malformed")
			}
		} else {
			cnt++
			lits, err := readClause(line, s)
			if err != nil {
				return err
			}
			s.AddClause(lits)
		}
	}
	if err := in.Err(); err != nil {
		return errors.Wrap(err, "PARSE ERROR! Could not read the input")
	}
	for s.NumVars() < vars {
		s.NewVar()
	}
	if cnt != clauses {
		return errors.Errorf("PARSE ERROR! wrong number of clause: %d %d", cnt, clauses)
	}
	return nil
}
