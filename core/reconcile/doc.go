// Package reconcile matches children listed on parent form submissions against the
// authoritative school registry and derives the parent accounts for accepted matches.
//
// The matching system is built from four pieces:
//
// 1. Similarity: a normalized Levenshtein ratio over lowercased full names, in [0, 1].
//
// 2. RosterIndex: registry records grouped by class label. It is built once per run and
//    is read-only afterwards, so it can be shared by concurrent resolvers without locks.
//
// 3. Resolve: scores every record in the child's class and keeps the running best and
//    second-best candidates. Ties keep the first record seen, so the audit output is only
//    reproducible when the registry export keeps a stable row order.
//
// 4. Engine: runs Resolve for every filled child slot of every verified submission on a
//    bounded worker pool and reassembles the results in submission and slot order.
//
// # Outcome policy
//
// An outcome is ambiguous when the best score is at or below the ambiguity ceiling (0.9)
// and a second candidate exists. Ambiguous outcomes still produce an audit row and are
// logged for human review. An outcome is acceptable when the best score exceeds the accept
// threshold (0.5); only acceptable outcomes produce an account row. A class without any
// registry records produces neither.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(reconcile.EngineConfig{Policy: reconcile.DefaultPolicy()}, gen, logger)
//	result, err := engine.Run(ctx, submissions, records)
//
// IndexCache keeps built indices for the HTTP server, keyed by the registry object version.
package reconcile
