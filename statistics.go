package main

type Statistics struct {
	RestartCount        uint64
	DecisionCount       uint64
	RandomDecisionCount uint64
	PropagationCount    uint64
	ConflictCount       uint64
	NumLearnts          uint64
	NumClauses          uint64

	ReduceDBCount            uint64
	RemovedClauseCount       uint64
	RemovedUnaryWatchedCount uint64
	MinimizedClauseCount     uint64 //clauses shrunk by binary resolution
	PromotedCount            uint64 //purgatory clauses graduated to two-watched

	NbDL2 uint64 //learnt clauses with LBD <= 2
	NbBin uint64 //learnt binary clauses
	NbUn  uint64 //learnt unit clauses

	BlockedRestartCount  uint64
	SameSearchBlockCount uint64
	LastBlockAtRestart   uint64

	SumDecisionLevels   uint64
	OriginalClausesSeen uint64

	//community structure counters
	BridgeDecisions             uint64
	HighcenterDecisions         uint64
	MutualBridgeCenterDecisions uint64
}

func NewStatistics() *Statistics {
	return &Statistics{}
}
