package sampler

// Progress is a point-in-time report from a running chain, delivered to
// the Config.Progress callback and mirrored into the verbose log.
type Progress struct {
	Title            string
	ChainID          int
	Iteration        int
	TotalIterations  int
	Retained         int
	Alpha            float64
	BetaInd          float64
	AcceptRate       float64
	WindowAcceptRate float64
}
