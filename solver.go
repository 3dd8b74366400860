package main

import (
	"fmt"
	"math/rand"
	"sort"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

const (
	//Conventional lower bound before restarts may be blocked by a long trail
	LowerBoundForBlockingRestart = 10000
	//The learnt clause at index size/RatioRemoveClauses decides whether the
	//reduce DB limit gets its special increment
	RatioRemoveClauses = 2
)

type Solver struct {
	opts *Options

	ClaAllocator        *ClauseAllocator  //The allocator for clause
	Clauses             []ClauseReference //List of problem clauses.
	LearntClauses       []ClauseReference //List of learnt clauses.
	UnaryWatchedClauses []ClauseReference //Imported clauses residing in the purgatory.

	Watches      *Watches //Two-watched lists for clauses of size >= 3.
	WatchesBin   *Watches //Watched lists for binary clauses.
	UnaryWatches *Watches //One-watched lists for purgatory clauses.

	Assigns  []LitBool //The current assignments.
	Polarity []bool    //The last seen sign of each variable, used by phase saving.
	Decision []bool    //Whether the variable is eligible for decisions.
	VarData  []VarData //Stores reason and level for each variable.
	Seen     []bool    //The seen variable for clause learning

	Qhead    int   //Head of queue (as index into the trail -- no more explicit propagation queue in MiniSat).
	Trail    []Lit //Assignment stack; stores all assigments made in the order the were made.
	TrailLim []int //Separator indices for different decision levels in 'trail'.

	NextVar  Var   //Next variable to be created.
	VarOrder *Heap //A priority queue of variables ordered with respect to the variable activity.
	OK       bool  //If FALSE, the constraints are already unsatisfiable. No part of the solver state may be used!

	VarIncreaseRatio            float64 //Amount to bump next variable with.
	VarDecayRatio               float64 //Current decay, ramps from VarDecay up to MaxVarDecay.
	ClauseActivityIncreaseRatio float32 //Amount to bump next clause with.

	ClausesLiterals uint64
	LearntsLiterals uint64

	//conflict analysis scratch
	analyzeStack      []Lit
	analyzeToClear    []Lit
	lastDecisionLevel []Lit
	permDiff          []uint64 //stamped by lbdFlag, indexed by level or by variable
	lbdFlag           uint64

	//restart machinery
	lbdQueue          *BoundedQueue
	trailQueue        *BoundedQueue
	sumLBD            float64
	conflictsRestarts uint64

	//reduce DB scheduling
	curRestart            uint64
	nbClausesBeforeReduce uint64

	//simplify bookkeeping
	simpDBAssigns int
	simpDBProps   int64

	//resource budgets, -1 means no limit
	ConflictBudget    int64
	PropagationBudget int64
	asynchInterrupt   atomic.Bool

	//incremental mode
	incremental          bool
	nbVarsInitialFormula int
	Assumptions          []Lit
	Conflict             []Lit //Final conflict over the assumptions, filled by analyzeFinal.

	useUnaryWatched   bool
	promoteOneWatched bool

	certified *CertificateWriter

	//community structure
	Cmtys           []int
	Bridges         []bool
	NumBridges      []int
	Centrality      []float64
	Highcenter      []bool
	cmtyCentrality  map[int]float64
	cmtyVarCount    map[int]int
	cmtyBridgeCount map[int]int
	cmtyDecisions   map[int]uint64

	rng *rand.Rand

	Model      []LitBool //If problem is satisfiable, this vector contains the model (if any).
	Statistics *Statistics
}

func NewSolver(opts *Options) *Solver {
	s := &Solver{
		opts:                        opts,
		ClaAllocator:                NewClauseAllocator(),
		Watches:                     NewWatches(),
		WatchesBin:                  NewWatches(),
		UnaryWatches:                NewWatches(),
		Qhead:                       0,
		NextVar:                     0,
		VarOrder:                    NewHeap(),
		OK:                          true,
		VarIncreaseRatio:            1.0,
		VarDecayRatio:               opts.VarDecay,
		ClauseActivityIncreaseRatio: 1.0,
		lbdQueue:                    NewBoundedQueue(opts.SizeLBDQueue),
		trailQueue:                  NewBoundedQueue(opts.SizeTrailQueue),
		curRestart:                  1,
		nbClausesBeforeReduce:       uint64(opts.FirstReduceDB),
		simpDBAssigns:               -1,
		ConflictBudget:              -1,
		PropagationBudget:           -1,
		nbVarsInitialFormula:        int(^uint(0) >> 1),
		promoteOneWatched:           true,
		permDiff:                    []uint64{0}, //slot for level 0
		cmtyCentrality:              make(map[int]float64),
		cmtyVarCount:                make(map[int]int),
		cmtyBridgeCount:             make(map[int]int),
		cmtyDecisions:               make(map[int]uint64),
		rng:                         rand.New(rand.NewSource(opts.RandomSeed)),
		Statistics:                  NewStatistics(),
	}
	return s
}

func (s *Solver) NewVar() Var {
	v := s.NextVar
	s.NextVar++
	s.Watches.Init(v)
	s.WatchesBin.Init(v)
	s.UnaryWatches.Init(v)
	s.Assigns = append(s.Assigns, LitBoolUndef)
	s.VarData = append(s.VarData, *NewVarData(ClaRefUndef, 0))
	s.Seen = append(s.Seen, false)
	s.Polarity = append(s.Polarity, true)
	s.Decision = append(s.Decision, true)
	s.permDiff = append(s.permDiff, 0)
	s.Cmtys = append(s.Cmtys, 0)
	s.Bridges = append(s.Bridges, false)
	s.NumBridges = append(s.NumBridges, 0)
	s.Centrality = append(s.Centrality, 0)
	s.Highcenter = append(s.Highcenter, false)
	s.SetDecisionVar(v, true)
	if s.opts.RndInitAct {
		s.VarOrder.SetActivity(v, s.rng.Float64()*0.00001)
	}
	return v
}

//SetIncrementalMode switches the solver to incremental mode: variables beyond
//the initial formula act as selectors and are excluded from LBD and bumping
func (s *Solver) SetIncrementalMode() {
	s.incremental = true
}

//InitNbInitialVars records how many variables belong to the initial formula;
//every variable created past that count is a selector
func (s *Solver) InitNbInitialVars(nb int) {
	s.nbVarsInitialFormula = nb
}

func (s *Solver) isSelector(v Var) bool {
	return s.incremental && int(v) >= s.nbVarsInitialFormula
}

//SetCertificate installs a DRAT-like certificate writer
func (s *Solver) SetCertificate(cw *CertificateWriter) {
	s.certified = cw
}

func (s *Solver) varDecayActivity() {
	s.VarIncreaseRatio *= 1 / s.VarDecayRatio
}

func (s *Solver) varBumpActivity(v Var) {
	s.varBumpActivityByInc(v, s.VarIncreaseRatio)
}

func (s *Solver) varBumpActivityByInc(v Var, inc float64) {
	s.VarOrder.SetActivity(v, s.VarOrder.Activity(v)+inc)
	if s.VarOrder.Activity(v) > 1e100 {
		//Rescale:
		for i := 0; i < s.NumVars(); i++ {
			s.VarOrder.SetActivity(Var(i), s.VarOrder.Activity(Var(i))*1e-100)
		}
		s.VarIncreaseRatio *= 1e-100
	}
	// Update order_heap with respect to new activity:
	if s.VarOrder.InHeap(v) {
		s.VarOrder.Decrease(v)
	}
}

func (s *Solver) clauseDecayActivity() {
	s.ClauseActivityIncreaseRatio *= 1 / float32(s.opts.ClauseDecay)
}

func (s *Solver) clauseBumpActivity(c *Clause) {
	c.Act += s.ClauseActivityIncreaseRatio
	if c.Activity() > 1e20 {
		//Rescale:
		for _, claRef := range s.LearntClauses {
			s.ClaAllocator.GetClause(claRef).Act *= 1e-20
		}
		s.ClauseActivityIncreaseRatio *= 1e-20
	}
}

func (s *Solver) NumVars() int {
	return int(s.NextVar)
}

func (s *Solver) NumClauses() uint64 {
	return s.Statistics.NumClauses
}

func (s *Solver) NumLearnts() uint64 {
	return s.Statistics.NumLearnts
}

func (s *Solver) NumAssigns() int {
	return len(s.Trail)
}

func (s *Solver) UncheckedEnqueue(p Lit, from ClauseReference) {
	if s.ValueLit(p) != LitBoolUndef {
		panic(fmt.Errorf("The assign is not LitBoolUndef: ValueLit(%d) = %v", p.X, s.ValueLit(p)))
	}
	if !p.Sign() {
		s.Assigns[p.Var()] = LitBoolTrue
	} else {
		s.Assigns[p.Var()] = LitBoolFalse
	}
	s.VarData[p.Var()] = *NewVarData(from, s.decisionLevel())
	s.Trail = append(s.Trail, p)
}

//CancelUntil reverts to the state at the given level, keeping all assignments
//at 'level' but not beyond
func (s *Solver) CancelUntil(level int) {
	if s.decisionLevel() <= level {
		return
	}
	for c := len(s.Trail) - 1; c >= s.TrailLim[level]; c-- {
		x := s.Trail[c].Var()
		s.Assigns[x] = LitBoolUndef
		if s.opts.PhaseSaving > 1 || (s.opts.PhaseSaving == 1 && c > s.TrailLim[len(s.TrailLim)-1]) {
			s.Polarity[x] = s.Trail[c].Sign()
		}
		s.InsertVarOrder(x)
	}
	s.Qhead = s.TrailLim[level]
	s.Trail = s.Trail[:s.Qhead]
	s.TrailLim = s.TrailLim[:level]
}

func (s *Solver) pickBranchLit() Lit {
	next := VarUndef

	// Random decision:
	if s.rng.Float64() < s.opts.RandomVarFreq && !s.VarOrder.Empty() {
		next = s.VarOrder.At(s.rng.Intn(s.VarOrder.Size()))
		if s.ValueVar(next) == LitBoolUndef && s.Decision[next] {
			s.Statistics.RandomDecisionCount++
		}
	}

	// Activity based decision:
	for next == VarUndef || s.ValueVar(next) != LitBoolUndef || !s.Decision[next] {
		if s.VarOrder.Empty() {
			next = VarUndef
			break
		}
		next = s.VarOrder.RemoveMin()
	}
	if next == VarUndef {
		return Lit{X: LitUndef}
	}

	sign := s.Polarity[next]
	if s.opts.RndPol {
		sign = s.rng.Float64() < 0.5
	}
	return *NewLit(next, sign)
}

func (s *Solver) newDecisionLevel() {
	s.TrailLim = append(s.TrailLim, len(s.Trail))
}

func (s *Solver) decisionLevel() int {
	return len(s.TrailLim)
}

//AddClause simplifies the clause against the level 0 assignment and installs
//it: level-0-false and duplicate literals are dropped, satisfied and
//tautological clauses are skipped, unit clauses are asserted immediately
func (s *Solver) AddClause(lits []Lit) bool {
	if s.decisionLevel() != 0 {
		panic(fmt.Errorf("The decision level is not zero: %d", s.decisionLevel()))
	}
	if !s.OK {
		return false
	}

	sort.Slice(lits, func(i, j int) bool {
		return lits[i].X < lits[j].X
	})

	var original []Lit
	touched := false
	if s.certified != nil {
		original = append(original, lits...)
		p := Lit{X: LitUndef}
		for i := 0; i < len(lits); i++ {
			if s.ValueLit(lits[i]) != LitBoolUndef || lits[i].Equal(p.Flip()) || lits[i].Equal(p) {
				touched = true
			}
			p = lits[i]
		}
	}

	// Check if clause is satisfied and remove false/duplicate literals:
	p := Lit{X: LitUndef}
	copiedIdx := 0
	for i := 0; i < len(lits); i++ {
		if s.ValueLit(lits[i]) == LitBoolTrue || lits[i].Equal(p.Flip()) {
			return true
		} else if s.ValueLit(lits[i]) != LitBoolFalse && lits[i].NotEqual(p) {
			lits[copiedIdx], p = lits[i], lits[i]
			copiedIdx++
		}
	}
	lits = lits[:copiedIdx]

	if touched && s.certified != nil {
		s.certified.AddClause(lits)
		s.certified.DeleteClause(original)
	}

	// An empty clause means that the problem is unsatisfiable
	if len(lits) == 0 {
		s.OK = false
		return false
	} else if len(lits) == 1 {
		s.UncheckedEnqueue(lits[0], ClaRefUndef)
		if confl := s.Propagate(); confl != ClaRefUndef {
			s.OK = false
		}
		return s.OK
	}
	claRef, err := s.ClaAllocator.NewAllocate(lits, false)
	if err != nil {
		panic(err)
	}
	s.Clauses = append(s.Clauses, claRef)
	s.attachClause(claRef)
	return true
}

func (s *Solver) attachClause(claRef ClauseReference) {
	clause := s.ClaAllocator.GetClause(claRef)
	if clause.Size() < 2 {
		panic(fmt.Errorf("The size of clause is less than 2: %v", clause))
	}

	firstLit := clause.At(0)
	secondLit := clause.At(1)
	if clause.Size() == 2 {
		s.WatchesBin.Append(firstLit.Flip(), NewWatcher(claRef, secondLit))
		s.WatchesBin.Append(secondLit.Flip(), NewWatcher(claRef, firstLit))
	} else {
		s.Watches.Append(firstLit.Flip(), NewWatcher(claRef, secondLit))
		s.Watches.Append(secondLit.Flip(), NewWatcher(claRef, firstLit))
	}

	if clause.Learnt() {
		s.Statistics.NumLearnts++
		s.LearntsLiterals += uint64(clause.Size())
	} else {
		s.Statistics.NumClauses++
		s.ClausesLiterals += uint64(clause.Size())
	}
}

//attachClausePurgatory attaches an imported clause with a single watch on its
//first literal
func (s *Solver) attachClausePurgatory(claRef ClauseReference) {
	clause := s.ClaAllocator.GetClause(claRef)
	if clause.Size() < 2 {
		panic(fmt.Errorf("The size of clause is less than 2: %v", clause))
	}
	s.UnaryWatches.Append(clause.At(0).Flip(), NewWatcher(claRef, clause.At(1)))
}

func (s *Solver) detachClause(cr ClauseReference, strict bool) {
	c := s.ClaAllocator.GetClause(cr)
	if c.Size() <= 1 {
		panic(fmt.Errorf("The size of clause is less than 2: %d", c.Size()))
	}
	firstLit := c.At(0)
	secondLit := c.At(1)
	watches := s.Watches
	if c.Size() == 2 {
		watches = s.WatchesBin
	}
	if strict {
		watches.Remove(firstLit.Flip(), NewWatcher(cr, secondLit))
		watches.Remove(secondLit.Flip(), NewWatcher(cr, firstLit))
	} else {
		// Lazy detaching: the lists must be cleaned before the clause storage is reused
		watches.Smudge(firstLit.Flip())
		watches.Smudge(secondLit.Flip())
	}
	if c.Learnt() {
		s.Statistics.NumLearnts--
		s.LearntsLiterals -= uint64(c.Size())
	} else {
		s.Statistics.NumClauses--
		s.ClausesLiterals -= uint64(c.Size())
	}
}

func (s *Solver) detachClausePurgatory(cr ClauseReference, strict bool) {
	c := s.ClaAllocator.GetClause(cr)
	if c.Size() <= 1 {
		panic(fmt.Errorf("The size of clause is less than 2: %d", c.Size()))
	}
	if strict {
		s.UnaryWatches.Remove(c.At(0).Flip(), NewWatcher(cr, c.At(1)))
	} else {
		s.UnaryWatches.Smudge(c.At(0).Flip())
	}
}

//locked reports whether the clause is the reason of its first literal's
//assignment; locked clauses must not be removed
func (s *Solver) locked(c *Clause) bool {
	firstLit := c.At(0)
	if s.ValueLit(firstLit) != LitBoolTrue {
		return false
	}
	r := s.Reason(firstLit.Var())
	if r == ClaRefUndef {
		return false
	}
	return s.ClaAllocator.GetClause(r) == c
}

func (s *Solver) satisfied(c *Clause) bool {
	if s.incremental {
		return s.ValueLit(c.At(0)) == LitBoolTrue || s.ValueLit(c.At(1)) == LitBoolTrue
	}
	for i := 0; i < c.Size(); i++ {
		if s.ValueLit(c.At(i)) == LitBoolTrue {
			return true
		}
	}
	return false
}

func (s *Solver) removeClause(cr ClauseReference, inPurgatory bool) {
	c := s.ClaAllocator.GetClause(cr)
	if s.certified != nil {
		s.certified.DeleteClause(c.Data[:c.Size()])
	}
	if inPurgatory {
		s.detachClausePurgatory(cr, false)
	} else {
		s.detachClause(cr, false)
	}
	// Don't leave a reason pointing at freed storage
	if s.locked(c) {
		s.VarData[c.At(0).Var()].Reason = ClaRefUndef
	}
	s.ClaAllocator.FreeClause(cr)
}

func (s *Solver) removeSatisfied(data *[]ClauseReference) {
	copiedIdx := 0
	for lastIdx := 0; lastIdx < len(*data); lastIdx++ {
		cr := (*data)[lastIdx]
		c := s.ClaAllocator.GetClause(cr)
		if s.satisfied(c) {
			if c.OneWatched() {
				s.Statistics.RemovedUnaryWatchedCount++
				s.removeClause(cr, true)
			} else {
				s.removeClause(cr, false)
			}
			continue
		}
		(*data)[copiedIdx] = cr
		copiedIdx++
	}
	*data = (*data)[:copiedIdx]
}

func (s *Solver) rebuildOrderHeap() {
	vs := make([]Var, 0, s.NumVars())
	for v := 0; v < s.NumVars(); v++ {
		if s.Decision[v] && s.ValueVar(Var(v)) == LitBoolUndef {
			vs = append(vs, Var(v))
		}
	}
	s.VarOrder.Build(vs)
}

//simplify removes satisfied clauses at decision level 0
func (s *Solver) simplify() bool {
	if s.decisionLevel() != 0 {
		panic(fmt.Errorf("The decision level is not zero: %d", s.decisionLevel()))
	}
	if !s.OK {
		return false
	}
	if confl := s.Propagate(); confl != ClaRefUndef {
		s.OK = false
		return false
	}
	if s.NumAssigns() == s.simpDBAssigns || s.simpDBProps > 0 {
		return true
	}

	s.removeSatisfied(&s.LearntClauses)
	s.removeSatisfied(&s.UnaryWatchedClauses)
	s.removeSatisfied(&s.Clauses)
	s.checkGarbage()
	s.rebuildOrderHeap()

	s.simpDBAssigns = s.NumAssigns()
	s.simpDBProps = int64(s.ClausesLiterals + s.LearntsLiterals)
	return true
}

func (s *Solver) SetDecisionVar(x Var, eligible bool) {
	s.Decision[int(x)] = eligible
	s.InsertVarOrder(x)
}

func (s *Solver) InsertVarOrder(x Var) {
	if !s.VarOrder.InHeap(x) && s.Decision[x] {
		s.VarOrder.PushBack(x)
	}
}

//SetConfBudget limits the number of conflicts of the following solve calls
func (s *Solver) SetConfBudget(x int64) {
	s.ConflictBudget = int64(s.Statistics.ConflictCount) + x
}

//SetPropBudget limits the number of propagations of the following solve calls
func (s *Solver) SetPropBudget(x int64) {
	s.PropagationBudget = int64(s.Statistics.PropagationCount) + x
}

//BudgetOff removes the conflict and propagation budgets
func (s *Solver) BudgetOff() {
	s.ConflictBudget = -1
	s.PropagationBudget = -1
}

//Interrupt asks the solver to come back from solving as soon as possible; the
//next budget check returns Unknown
func (s *Solver) Interrupt() {
	s.asynchInterrupt.Store(true)
}

//ClearInterrupt resets the asynchronous interrupt flag
func (s *Solver) ClearInterrupt() {
	s.asynchInterrupt.Store(false)
}

func (s *Solver) withinBudget() bool {
	return !s.asynchInterrupt.Load() &&
		(s.ConflictBudget < 0 || s.Statistics.ConflictCount < uint64(s.ConflictBudget)) &&
		(s.PropagationBudget < 0 || s.Statistics.PropagationCount < uint64(s.PropagationBudget))
}

//Search runs the CDCL loop until a restart fires, a terminal state is
//reached, or the budget runs out
func (s *Solver) Search() LitBool {
	if !s.OK {
		panic("s.OK is false")
	}
	s.Statistics.RestartCount++
	blocked := false
	var learntClause, selectors []Lit

	for {
		if s.decisionLevel() == 0 {
			s.parallelImportUnaryClauses()
			if s.parallelImportClauses() {
				return LitBoolFalse
			}
		}
		confl := s.Propagate()
		if confl != ClaRefUndef {
			//CONFLICT
			if s.parallelJobIsFinished() {
				return LitBoolUndef
			}
			s.Statistics.SumDecisionLevels += uint64(s.decisionLevel())
			s.Statistics.ConflictCount++
			s.conflictsRestarts++
			if s.Statistics.ConflictCount%5000 == 0 && s.VarDecayRatio < s.opts.MaxVarDecay {
				s.VarDecayRatio += 0.01
			}

			//If the decision level is 0, the problem is unsatisfiable.
			if s.decisionLevel() == 0 {
				return LitBoolFalse
			}

			s.trailQueue.Push(len(s.Trail))
			//Block the restart while the trail is unusually long, the search
			//is likely close to a model
			if s.conflictsRestarts > LowerBoundForBlockingRestart && s.lbdQueue.IsValid() &&
				float64(len(s.Trail)) > s.opts.R*s.trailQueue.Avg() {
				s.lbdQueue.FastClear()
				s.Statistics.BlockedRestartCount++
				if !blocked {
					s.Statistics.LastBlockAtRestart = s.Statistics.RestartCount
					s.Statistics.SameSearchBlockCount++
					blocked = true
				}
			}

			learntClause = learntClause[:0]
			selectors = selectors[:0]
			var backTrackLevel, lbd, szWithoutSelectors int
			learntClause, selectors, backTrackLevel, lbd, szWithoutSelectors = s.Analyze(confl, learntClause, selectors)

			s.lbdQueue.Push(lbd)
			s.sumLBD += float64(lbd)

			s.CancelUntil(backTrackLevel)

			if s.certified != nil {
				s.certified.AddClause(learntClause)
			}

			if len(learntClause) == 1 {
				s.UncheckedEnqueue(learntClause[0], ClaRefUndef)
				s.Statistics.NbUn++
				s.parallelExportUnaryClause(learntClause[0])
			} else {
				claRef, err := s.ClaAllocator.NewAllocate(learntClause, true)
				if err != nil {
					panic(err)
				}
				c := s.ClaAllocator.GetClause(claRef)
				c.SetLBD(lbd)
				c.SetOneWatched(false)
				c.SetSizeWithoutSelectors(szWithoutSelectors)
				if lbd <= 2 {
					s.Statistics.NbDL2++
				}
				if c.Size() == 2 {
					s.Statistics.NbBin++
				}
				s.LearntClauses = append(s.LearntClauses, claRef)
				s.attachClause(claRef)
				s.parallelExportClauseDuringSearch(c)
				s.clauseBumpActivity(c)
				s.UncheckedEnqueue(learntClause[0], claRef)
			}
			s.varDecayActivity()
			s.clauseDecayActivity()
		} else {
			//NO CONFLICT
			if s.lbdQueue.IsValid() && s.lbdQueue.Avg()*s.opts.K > s.sumLBD/float64(s.conflictsRestarts) {
				//Restart
				s.lbdQueue.FastClear()
				bt := 0
				if s.incremental {
					//do not backtrack past the assumption prefix
					bt = s.decisionLevel()
					if len(s.Assumptions) < bt {
						bt = len(s.Assumptions)
					}
				}
				s.CancelUntil(bt)
				return LitBoolUndef
			}

			if !s.withinBudget() {
				s.CancelUntil(0)
				return LitBoolUndef
			}

			// Simplify the set of problem clauses:
			if s.decisionLevel() == 0 && !s.simplify() {
				return LitBoolFalse
			}

			// Perform clause database reduction:
			if s.Statistics.ConflictCount >= s.curRestart*s.nbClausesBeforeReduce && len(s.LearntClauses) > 0 {
				s.curRestart = s.Statistics.ConflictCount/s.nbClausesBeforeReduce + 1
				s.reduceDB()
				if !s.panicModeIsEnabled() {
					s.nbClausesBeforeReduce += uint64(s.opts.IncReduceDB)
				}
			}

			nextLit := Lit{X: LitUndef}
			for s.decisionLevel() < len(s.Assumptions) {
				// Perform user provided assumption:
				p := s.Assumptions[s.decisionLevel()]
				if s.ValueLit(p) == LitBoolTrue {
					// Dummy decision level:
					s.newDecisionLevel()
				} else if s.ValueLit(p) == LitBoolFalse {
					s.analyzeFinal(p.Flip())
					return LitBoolFalse
				} else {
					nextLit = p
					break
				}
			}

			if nextLit.X == LitUndef {
				s.Statistics.DecisionCount++
				nextLit = s.pickBranchLit()
				if nextLit.X == LitUndef {
					// Model found:
					return LitBoolTrue
				}
				v := nextLit.Var()
				if s.Bridges[v] {
					s.Statistics.BridgeDecisions++
				}
				if s.Highcenter[v] {
					s.Statistics.HighcenterDecisions++
					if s.Bridges[v] {
						s.Statistics.MutualBridgeCenterDecisions++
					}
				}
				s.cmtyDecisions[s.Cmtys[v]]++
			}

			s.newDecisionLevel()
			s.UncheckedEnqueue(nextLit, ClaRefUndef)
		}
	}
}

//Solve decides satisfiability of the loaded formula
func (s *Solver) Solve() LitBool {
	s.Assumptions = s.Assumptions[:0]
	return s.solve()
}

//SolveWithAssumptions decides satisfiability under the given assumptions; on
//UNSAT the Conflict field holds a final conflict clause over the assumptions
func (s *Solver) SolveWithAssumptions(assumptions []Lit) LitBool {
	s.Assumptions = append(s.Assumptions[:0], assumptions...)
	return s.solve()
}

func (s *Solver) solve() LitBool {
	if s.incremental && s.certified != nil {
		logrus.Fatal("can not use incremental and certified unsat at the same time")
	}
	s.Model = nil
	s.Conflict = s.Conflict[:0]
	if !s.OK {
		if s.certified != nil {
			s.certified.Done()
		}
		return LitBoolFalse
	}

	status := LitBoolUndef
	for status == LitBoolUndef {
		status = s.Search()
		if !s.withinBudget() {
			break
		}
	}

	if s.certified != nil && status == LitBoolFalse {
		s.certified.Done()
	}

	if status == LitBoolTrue {
		s.Model = make([]LitBool, s.NumVars())
		for i := 0; i < s.NumVars(); i++ {
			s.Model[i] = s.ValueVar(Var(i))
		}
	} else if status == LitBoolFalse && len(s.Conflict) == 0 {
		s.OK = false
	}
	s.CancelUntil(0)
	return status
}
