package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("SingleCandidate", func(t *testing.T) {
		idx := BuildIndex([]RegistryRecord{
			{GivenName: "Anna", FamilyName: "Muster", Class: "5a", StudentID: "S1"},
		})

		outcome := Resolve(Child{GivenName: "Ana", FamilyName: "Muster", Class: "5a"}, idx)

		require.True(t, outcome.HasMatch())
		assert.Equal(t, "S1", outcome.Best.Record.StudentID)
		assert.Greater(t, outcome.Best.Score, 0.9)
		assert.Nil(t, outcome.Second)
	})

	t.Run("EmptyClass", func(t *testing.T) {
		idx := BuildIndex([]RegistryRecord{
			{GivenName: "Anna", FamilyName: "Muster", Class: "5a", StudentID: "S1"},
		})

		outcome := Resolve(Child{GivenName: "Anna", FamilyName: "Muster", Class: "6c"}, idx)

		assert.False(t, outcome.HasMatch())
		assert.Nil(t, outcome.Second)
	})

	t.Run("TieKeepsFirstSeen", func(t *testing.T) {
		idx := BuildIndex([]RegistryRecord{
			{GivenName: "Max", FamilyName: "Klein", Class: "5a", StudentID: "S1"},
			{GivenName: "Marc", FamilyName: "Klein", Class: "5a", StudentID: "S2"},
		})

		outcome := Resolve(Child{GivenName: "Marx", FamilyName: "Klein", Class: "5a"}, idx)

		require.NotNil(t, outcome.Best)
		require.NotNil(t, outcome.Second)
		assert.Equal(t, "S1", outcome.Best.Record.StudentID)
		assert.Equal(t, "S2", outcome.Second.Record.StudentID)
		assert.InDelta(t, 0.9, outcome.Best.Score, 1e-9)
		assert.InDelta(t, 0.9, outcome.Second.Score, 1e-9)
	})

	t.Run("HigherScoreDemotesBest", func(t *testing.T) {
		idx := BuildIndex([]RegistryRecord{
			{GivenName: "Bob", FamilyName: "Lee", Class: "5a", StudentID: "S1"},
			{GivenName: "Anna", FamilyName: "Muster", Class: "5a", StudentID: "S2"},
			{GivenName: "Anne", FamilyName: "Muster", Class: "5a", StudentID: "S3"},
		})

		outcome := Resolve(Child{GivenName: "Anna", FamilyName: "Muster", Class: "5a"}, idx)

		assert.Equal(t, "S2", outcome.Best.Record.StudentID)
		assert.Equal(t, 1.0, outcome.Best.Score)
		assert.Equal(t, "S3", outcome.Second.Record.StudentID)
	})

	t.Run("LowScoreStillCounts", func(t *testing.T) {
		idx := BuildIndex([]RegistryRecord{
			{GivenName: "xyz", FamilyName: "", Class: "5a", StudentID: "S1"},
		})

		outcome := Resolve(Child{GivenName: "abc", FamilyName: "", Class: "5a"}, idx)

		require.True(t, outcome.HasMatch())
		assert.Equal(t, "S1", outcome.Best.Record.StudentID)
	})
}

func TestResolve_SecondNeverExceedsBest(t *testing.T) {
	records := []RegistryRecord{
		{GivenName: "Lena", FamilyName: "Schulz", Class: "7b", StudentID: "1"},
		{GivenName: "Lea", FamilyName: "Schulze", Class: "7b", StudentID: "2"},
		{GivenName: "Leon", FamilyName: "Schulz", Class: "7b", StudentID: "3"},
		{GivenName: "Lara", FamilyName: "Scholz", Class: "7b", StudentID: "4"},
		{GivenName: "Lena", FamilyName: "Schultz", Class: "7b", StudentID: "5"},
	}
	idx := BuildIndex(records)

	for _, child := range []Child{
		{GivenName: "Lena", FamilyName: "Schulz", Class: "7b"},
		{GivenName: "Leo", FamilyName: "Scholz", Class: "7b"},
		{GivenName: "L", FamilyName: "S", Class: "7b"},
	} {
		outcome := Resolve(child, idx)
		require.NotNil(t, outcome.Second)
		assert.LessOrEqual(t, outcome.Second.Score, outcome.Best.Score)
	}
}

func TestPolicy(t *testing.T) {
	p := DefaultPolicy()
	cand := func(score float64) *Candidate { return &Candidate{Score: score} }

	tests := []struct {
		name       string
		outcome    MatchOutcome
		ambiguous  bool
		acceptable bool
	}{
		{"NoMatch", MatchOutcome{}, false, false},
		{"ClearSingle", MatchOutcome{Best: cand(0.95)}, false, true},
		{"LowSingle", MatchOutcome{Best: cand(0.4)}, false, false},
		{"CeilingWithSecond", MatchOutcome{Best: cand(0.9), Second: cand(0.9)}, true, true},
		{"HighWithSecond", MatchOutcome{Best: cand(0.91), Second: cand(0.5)}, false, true},
		{"LowWithSecond", MatchOutcome{Best: cand(0.5), Second: cand(0.2)}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ambiguous, p.Ambiguous(tt.outcome))
			assert.Equal(t, tt.acceptable, p.Acceptable(tt.outcome))
		})
	}
}
