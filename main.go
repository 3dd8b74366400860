package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var CurrentTime time.Time

func GetFlags() []cli.Flag {
	return []cli.Flag{
		cli.BoolFlag{
			Name:  "debug,d",
			Usage: "Debug mode",
		},
		cli.BoolTFlag{
			Name:  "verbosity,verb",
			Usage: "Verbosity mode",
		},
		cli.StringFlag{
			Name:  "input-file, in",
			Usage: "Input cnf file for solving(required)",
		},
		cli.StringFlag{
			Name:  "cmty-file",
			Usage: "The community file(required)",
		},
		cli.StringFlag{
			Name:  "center-file",
			Usage: "The centrality file(required)",
		},
		cli.IntFlag{
			Name:  "cpu-time-limit",
			Usage: "Limit on CPU time allowed in seconds",
			Value: -1,
		},
		cli.Int64Flag{
			Name:  "conflict-budget",
			Usage: "Limit on the number of conflicts, -1 means no limit",
			Value: -1,
		},
		cli.Int64Flag{
			Name:  "propagation-budget",
			Usage: "Limit on the number of propagations, -1 means no limit",
			Value: -1,
		},
		cli.BoolFlag{
			Name:  "certified-unsat",
			Usage: "Emit a DRAT-like certificate",
		},
		cli.StringFlag{
			Name:  "certified-output",
			Usage: "Output file of the certificate",
			Value: "proof.out",
		},
		cli.Float64Flag{
			Name:  "K",
			Usage: "The constant used to force restart",
			Value: 0.8,
		},
		cli.Float64Flag{
			Name:  "R",
			Usage: "The constant used to block restart",
			Value: 1.4,
		},
		cli.IntFlag{
			Name:  "szLBDQueue",
			Usage: "The size of moving average for LBD (restarts)",
			Value: 50,
		},
		cli.IntFlag{
			Name:  "szTrailQueue",
			Usage: "The size of moving average for trail (block restarts)",
			Value: 5000,
		},
		cli.IntFlag{
			Name:  "firstReduceDB",
			Usage: "The number of conflicts before the first reduce DB",
			Value: 2000,
		},
		cli.IntFlag{
			Name:  "incReduceDB",
			Usage: "Increment for reduce DB",
			Value: 300,
		},
		cli.IntFlag{
			Name:  "specialIncReduceDB",
			Usage: "Special increment for reduce DB",
			Value: 1000,
		},
		cli.IntFlag{
			Name:  "minLBDFrozenClause",
			Usage: "Protect clauses if their LBD decrease and is lower than (for one turn)",
			Value: 30,
		},
		cli.IntFlag{
			Name:  "minSizeMinimizingClause",
			Usage: "The min size required to minimize clause",
			Value: 30,
		},
		cli.IntFlag{
			Name:  "minLBDMinimizingClause",
			Usage: "The min LBD required to minimize clause",
			Value: 6,
		},
		cli.Float64Flag{
			Name:  "var-decay",
			Usage: "The variable activity decay factor (starting point)",
			Value: 0.8,
		},
		cli.Float64Flag{
			Name:  "max-var-decay",
			Usage: "The maximum variable activity decay factor",
			Value: 0.95,
		},
		cli.Float64Flag{
			Name:  "cla-decay",
			Usage: "The clause activity decay factor",
			Value: 0.999,
		},
		cli.Float64Flag{
			Name:  "var-incx",
			Usage: "The activity bump multiplier for high centrality variables",
			Value: 1.1,
		},
		cli.Float64Flag{
			Name:  "rnd-freq",
			Usage: "The frequency with which the decision heuristic tries to choose a random variable",
			Value: 0,
		},
		cli.Int64Flag{
			Name:  "rnd-seed",
			Usage: "Used by the random variable selection",
			Value: 91648253,
		},
		cli.BoolFlag{
			Name:  "rnd-pol",
			Usage: "Randomize the polarity of decisions",
		},
		cli.BoolFlag{
			Name:  "rnd-init",
			Usage: "Randomize the initial activity",
		},
		cli.IntFlag{
			Name:  "ccmin-mode",
			Usage: "Controls conflict clause minimization (0=none, 1=basic, 2=deep)",
			Value: 2,
		},
		cli.IntFlag{
			Name:  "phase-saving",
			Usage: "Controls the level of phase saving (0=none, 1=limited, 2=full)",
			Value: 2,
		},
		cli.Uint64Flag{
			Name:  "decision-warmup",
			Usage: "The number of decisions after which the centrality bump is disabled",
			Value: 100000,
		},
		cli.Float64Flag{
			Name:  "gc-frac",
			Usage: "The fraction of wasted memory allowed before a garbage collection is triggered",
			Value: 0.20,
		},
	}
}

func ValidateFlags(c *cli.Context) (err error) {
	if c.String("input-file") == "" {
		return fmt.Errorf("input-file is required.")
	}
	if c.String("cmty-file") == "" {
		return fmt.Errorf("missing community file")
	}
	if c.String("center-file") == "" {
		return fmt.Errorf("missing centrality file")
	}
	return nil
}

func printProblemStatistics(s *Solver) {
	fmt.Printf("c ============================[ Problem Statistics ]=============================\n")
	fmt.Printf("c |                                                                             |\n")
	fmt.Printf("c |  Number of variables:  %12d                                         |\n", s.NumVars())
	fmt.Printf("c |  Number of clauses:    %12d                                         |\n", s.NumClauses())
	fmt.Printf("c ================================================================================\n")
}

func printStatistics(s *Solver) {
	elapsedTimeSeconds := time.Since(CurrentTime).Seconds()
	fmt.Printf("c ================================================================================\n")
	fmt.Printf("c restarts: %12d (%d blocked)\n", s.Statistics.RestartCount, s.Statistics.BlockedRestartCount)
	fmt.Printf("c conflicts: %12d (%.02f / sec)\n", s.Statistics.ConflictCount, float64(s.Statistics.ConflictCount)/elapsedTimeSeconds)
	fmt.Printf("c decisions: %12d (%.02f / sec)\n", s.Statistics.DecisionCount, float64(s.Statistics.DecisionCount)/elapsedTimeSeconds)
	fmt.Printf("c propagations: %12d (%.02f / sec)\n", s.Statistics.PropagationCount, float64(s.Statistics.PropagationCount)/elapsedTimeSeconds)
	fmt.Printf("c reduce DB: %12d\n", s.Statistics.ReduceDBCount)
	fmt.Printf("c removed clause: %12d\n", s.Statistics.RemovedClauseCount)
	fmt.Printf("c learnt DL2: %12d  binary: %d  unit: %d\n", s.Statistics.NbDL2, s.Statistics.NbBin, s.Statistics.NbUn)
	fmt.Printf("c bridge decisions: %12d\n", s.Statistics.BridgeDecisions)
	fmt.Printf("c highcenter decisions: %12d\n", s.Statistics.HighcenterDecisions)
	fmt.Printf("c mutual bridge/center decisions: %12d\n", s.Statistics.MutualBridgeCenterDecisions)
	fmt.Printf("c cpu time: %12f\n", elapsedTimeSeconds)
}

func setTimeOut(s *Solver, limitTimeSeconds int) {
	if limitTimeSeconds <= 0 {
		return
	}
	go func() {
		<-time.After(time.Duration(limitTimeSeconds) * time.Second)
		fmt.Println("c TIMEOUT")
		s.Interrupt()
	}()
}

func setInterrupt(s *Solver) {
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("c INTERRUPT")
		s.Interrupt()
	}()
}

func printModel(s *Solver) {
	fmt.Print("v ")
	for i := 0; i < s.NumVars(); i++ {
		if s.Model[i] == LitBoolTrue {
			fmt.Printf("%d ", i+1)
		} else {
			fmt.Printf("%d ", -(i + 1))
		}
	}
	fmt.Print("0\n")
}

func init() {
	CurrentTime = time.Now()
}

func main() {
	app := cli.NewApp()
	app.Name = "prefsat"
	app.Usage = "A CDCL SAT solver with community centrality preferential bumping"
	app.Flags = GetFlags()

	app.Before = func(c *cli.Context) error {
		if c.Bool("debug") {
			logrus.SetLevel(logrus.DebugLevel)
		}
		return nil
	}

	app.Action = func(c *cli.Context) error {
		//validate flag
		if err := ValidateFlags(c); err != nil {
			fmt.Println(err)
			cli.ShowAppHelpAndExit(c, 2)
		}

		opts := OptionsFromContext(c)
		solver := NewSolver(opts)
		setTimeOut(solver, c.Int("cpu-time-limit"))
		setInterrupt(solver)
		solver.ConflictBudget = c.Int64("conflict-budget")
		solver.PropagationBudget = c.Int64("propagation-budget")

		if opts.CertifiedUNSAT {
			cw, err := NewCertificateWriter(opts.CertifiedFile)
			if err != nil {
				return err
			}
			solver.SetCertificate(cw)
		}

		fp, err := os.Open(opts.CnfFile)
		if err != nil {
			return err
		}
		defer fp.Close()
		in := bufio.NewScanner(fp)
		in.Buffer(make([]byte, 1024*1024), 1024*1024)
		if err := parseDimacs(in, solver); err != nil {
			return err
		}

		if err := solver.LoadCommunityFile(opts.CmtyFile); err != nil {
			return err
		}
		if err := solver.LoadCentralityFile(opts.CenterFile); err != nil {
			return err
		}
		solver.InitCentrality()

		if opts.Verbosity {
			printProblemStatistics(solver)
		}
		status := solver.Solve()

		if opts.Verbosity {
			printStatistics(solver)
		}
		if status == LitBoolTrue {
			fmt.Println("\ns SATISFIABLE")
			printModel(solver)
		} else if status == LitBoolFalse {
			fmt.Println("\ns UNSATISFIABLE")
		} else {
			fmt.Println("\ns INDETERMINATE")
		}
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		logrus.Fatal(err)
	}
}
