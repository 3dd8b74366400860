package main

import (
	"github.com/urfave/cli"
)

//Options is the full configuration of a solver instance. It is built once at
//solver creation; there is no process-wide option state.
type Options struct {
	//restart
	K              float64
	R              float64
	SizeLBDQueue   int
	SizeTrailQueue int

	//reduce DB
	FirstReduceDB      int
	IncReduceDB        int
	SpecialIncReduceDB int
	LbLBDFrozenClause  int

	//minimization
	LbSizeMinimizingClause int
	LbLBDMinimizingClause  int
	CcminMode              int

	//activity
	VarDecay    float64
	MaxVarDecay float64
	ClauseDecay float64
	VarIncX     float64 //multiplier applied to bumps of high-centrality variables

	//decision
	RandomVarFreq  float64
	RandomSeed     int64
	PhaseSaving    int
	RndPol         bool
	RndInitAct     bool
	DecisionWarmup uint64 //centrality bumping is disabled once this many decisions were made

	//memory
	GarbageFrac float64

	//files
	CnfFile    string
	CmtyFile   string
	CenterFile string

	//certificate
	CertifiedUNSAT bool
	CertifiedFile  string

	Verbosity bool
}

//DefaultOptions returns the options every constant of which matches the
//defaults of the original solver
func DefaultOptions() *Options {
	return &Options{
		K:                      0.8,
		R:                      1.4,
		SizeLBDQueue:           50,
		SizeTrailQueue:         5000,
		FirstReduceDB:          2000,
		IncReduceDB:            300,
		SpecialIncReduceDB:     1000,
		LbLBDFrozenClause:      30,
		LbSizeMinimizingClause: 30,
		LbLBDMinimizingClause:  6,
		CcminMode:              2,
		VarDecay:               0.8,
		MaxVarDecay:            0.95,
		ClauseDecay:            0.999,
		VarIncX:                1.1,
		RandomVarFreq:          0,
		RandomSeed:             91648253,
		PhaseSaving:            2,
		DecisionWarmup:         100000,
		GarbageFrac:            0.20,
	}
}

//OptionsFromContext builds the solver options from the parsed command line
func OptionsFromContext(c *cli.Context) *Options {
	return &Options{
		K:                      c.Float64("K"),
		R:                      c.Float64("R"),
		SizeLBDQueue:           c.Int("szLBDQueue"),
		SizeTrailQueue:         c.Int("szTrailQueue"),
		FirstReduceDB:          c.Int("firstReduceDB"),
		IncReduceDB:            c.Int("incReduceDB"),
		SpecialIncReduceDB:     c.Int("specialIncReduceDB"),
		LbLBDFrozenClause:      c.Int("minLBDFrozenClause"),
		LbSizeMinimizingClause: c.Int("minSizeMinimizingClause"),
		LbLBDMinimizingClause:  c.Int("minLBDMinimizingClause"),
		CcminMode:              c.Int("ccmin-mode"),
		VarDecay:               c.Float64("var-decay"),
		MaxVarDecay:            c.Float64("max-var-decay"),
		ClauseDecay:            c.Float64("cla-decay"),
		VarIncX:                c.Float64("var-incx"),
		RandomVarFreq:          c.Float64("rnd-freq"),
		RandomSeed:             c.Int64("rnd-seed"),
		PhaseSaving:            c.Int("phase-saving"),
		RndPol:                 c.Bool("rnd-pol"),
		RndInitAct:             c.Bool("rnd-init"),
		DecisionWarmup:         c.Uint64("decision-warmup"),
		GarbageFrac:            c.Float64("gc-frac"),
		CnfFile:                c.String("input-file"),
		CmtyFile:               c.String("cmty-file"),
		CenterFile:             c.String("center-file"),
		CertifiedUNSAT:         c.Bool("certified-unsat"),
		CertifiedFile:          c.String("certified-output"),
		Verbosity:              c.Bool("verbosity"),
	}
}
