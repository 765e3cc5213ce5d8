package reconcile

import (
	"context"
	"runtime"
	"strings"

	"elternaccounts/core/username"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Recorder receives one outcome label per resolved child.
type Recorder interface {
	ObserveOutcome(outcome string)
}

// EngineConfig controls a reconciliation engine.
type EngineConfig struct {
	// Policy holds the accept and ambiguity thresholds.
	Policy Policy

	// Workers bounds concurrent resolutions. Zero uses GOMAXPROCS.
	Workers int

	// Recorder is optional.
	Recorder Recorder
}

// Engine runs the reconciliation pipeline.
type Engine struct {
	cfg       EngineConfig
	generator *username.Generator
	logger    *zap.Logger
}

// NewEngine creates an engine. The generator derives the short-style account usernames.
func NewEngine(cfg EngineConfig, generator *username.Generator, logger *zap.Logger) *Engine {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if generator == nil {
		generator = username.NewGenerator(username.DefaultMapping())
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg, generator: generator, logger: logger}
}

// Policy returns the thresholds the engine applies.
func (e *Engine) Policy() Policy {
	return e.cfg.Policy
}

// Run builds the roster index from records and reconciles all submissions against it.
func (e *Engine) Run(ctx context.Context, submissions []Submission, records []RegistryRecord) (*Result, error) {
	return e.RunWithIndex(ctx, submissions, BuildIndex(records))
}

// job is one filled child slot of a verified submission.
type job struct {
	submission int
	child      Child
}

// RunWithIndex reconciles all submissions against a prebuilt index.
// Children are resolved concurrently; the result lists keep submission and slot order.
func (e *Engine) RunWithIndex(ctx context.Context, submissions []Submission, index *RosterIndex) (*Result, error) {
	summary := Summary{
		Submissions:     len(submissions),
		RegistryRecords: index.Len(),
	}

	var jobs []job
	for i, sub := range submissions {
		if !sub.Verified {
			continue
		}
		summary.Verified++
		for slot, child := range sub.Children {
			if slot >= MaxChildren {
				break
			}
			if strings.TrimSpace(child.GivenName) == "" {
				continue
			}
			jobs = append(jobs, job{submission: i, child: child})
		}
	}
	summary.Children = len(jobs)

	outcomes := make([]MatchOutcome, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = Resolve(jobs[i].child, index)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		Audit:    make([]AuditEntry, 0, len(jobs)),
		Accounts: make([]AccountEntry, 0, len(jobs)),
	}

	for i, j := range jobs {
		outcome := outcomes[i]
		sub := submissions[j.submission]

		if !outcome.HasMatch() {
			summary.NoCandidate++
			e.observe(OutcomeNoCandidate)
			e.logger.Debug("No registry records for class",
				zap.String("class", j.child.Class),
				zap.String("child", j.child.FullName()),
			)
			continue
		}

		entry := e.auditEntry(sub, j.child, outcome)
		result.Audit = append(result.Audit, entry)

		if entry.Ambiguous {
			summary.Ambiguous++
			e.observe(OutcomeAmbiguous)
			e.logAmbiguous(sub, j.child, outcome)
		}

		if !entry.Accepted {
			summary.LowConfidence++
			e.observe(OutcomeLowConfidence)
			continue
		}

		summary.Accepted++
		e.observe(OutcomeAccepted)
		result.Accounts = append(result.Accounts, AccountEntry{
			ParentGivenName:  sub.ParentGivenName,
			ParentFamilyName: sub.ParentFamilyName,
			Email:            entry.Email,
			StudentID:        entry.StudentID,
			Username:         e.generator.Short(sub.ParentGivenName, sub.ParentFamilyName),
		})
	}

	result.Summary = summary
	return result, nil
}

func (e *Engine) auditEntry(sub Submission, child Child, outcome MatchOutcome) AuditEntry {
	best := outcome.Best.Record
	entry := AuditEntry{
		ParentGivenName:    sub.ParentGivenName,
		ParentFamilyName:   sub.ParentFamilyName,
		Email:              strings.ToLower(sub.ParentEmail),
		StudentID:          best.StudentID,
		ChildGivenName:     child.GivenName,
		ChildFamilyName:    child.FamilyName,
		RegistryGivenName:  best.GivenName,
		RegistryFamilyName: best.FamilyName,
		BestScore:          outcome.Best.Score,
		Ambiguous:          e.cfg.Policy.Ambiguous(outcome),
		Accepted:           e.cfg.Policy.Acceptable(outcome),
	}
	if outcome.Second != nil {
		score := outcome.Second.Score
		entry.SecondScore = &score
		entry.SecondStudentID = outcome.Second.Record.StudentID
	}
	return entry
}

func (e *Engine) logAmbiguous(sub Submission, child Child, outcome MatchOutcome) {
	e.logger.Warn("Ambiguous match needs review",
		zap.String("parent", sub.ParentGivenName+" "+sub.ParentFamilyName),
		zap.String("email", strings.ToLower(sub.ParentEmail)),
		zap.String("child", child.FullName()),
		zap.String("class", child.Class),
		zap.String("best", outcome.Best.Record.FullName()),
		zap.String("best_id", outcome.Best.Record.StudentID),
		zap.Float64("best_score", outcome.Best.Score),
		zap.String("second", outcome.Second.Record.FullName()),
		zap.String("second_id", outcome.Second.Record.StudentID),
		zap.Float64("second_score", outcome.Second.Score),
	)
}

func (e *Engine) observe(outcome string) {
	if e.cfg.Recorder != nil {
		e.cfg.Recorder.ObserveOutcome(outcome)
	}
}
