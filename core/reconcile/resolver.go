package reconcile

// Resolve finds the best and second-best registry records for a child within its class.
// The returned outcome has no best candidate when the class is empty or unknown.
func Resolve(child Child, index *RosterIndex) MatchOutcome {
	name := child.FullName()

	var outcome MatchOutcome
	for _, rec := range index.Lookup(child.Class) {
		outcome = outcome.consider(Candidate{
			Record: rec,
			Score:  Similarity(rec.FullName(), name),
		})
	}
	return outcome
}

// consider folds one candidate into the running best/second pair.
// A strictly higher score demotes the current best; equal scores keep the earlier record.
func (o MatchOutcome) consider(c Candidate) MatchOutcome {
	switch {
	case o.Best == nil || c.Score > o.Best.Score:
		o.Second = o.Best
		o.Best = &c
	case o.Second == nil || c.Score > o.Second.Score:
		o.Second = &c
	}
	return o
}
