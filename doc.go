// Package scwfc is the module root for a spatial-constraint-growth +
// wave-function-collapse scene solver.
//
// A scene is laid out in two interleaved passes:
//
//   - spatial constraint growth (scwfc.Solver.SCPropagate) discovers where
//     objects may go by spawning geometric neighbors under repulsion;
//   - wave function collapse (scwfc.Solver.WFCSolve) assigns each discovered
//     placement a concrete object class consistent with its neighbors,
//     via weighted randomized collapse over a shrinking per-node domain.
//
// The module is organized by concern:
//
//	graph/       — generic sparse/dense graph over integer node handles
//	maxflow/     — max-flow on the dense graph variant, used by diagnostics
//	wfc/         — Value/Pattern/DomainNode and the generic constraint engine
//	objectdb/    — class table, pattern table, object variants, OBBs, JSON I/O
//	scwfc/       — the SC+WFC orchestrator and the host scene-placement contract
//	scene/       — an in-memory reference host implementing that contract
//	diagnostics/ — read-only reports over a finalized scene
//	logx/        — a small leveled logger used throughout
//	cmd/scwfcctl — a CLI driving load/propagate/solve/report end to end
//
// See SPEC_FULL.md in the repository root for the full design.
package scwfc
