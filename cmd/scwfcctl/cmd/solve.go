package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hborlik/scwfc/diagnostics"
	"github.com/hborlik/scwfc/objectdb"
	"github.com/hborlik/scwfc/scene"
	"github.com/hborlik/scwfc/scwfc"
)

// defaultBucketCellSize sizes scene.Scene's spatial hash; unrelated to
// NeighborRadiusFactor, which governs edge-formation radius inside the
// solver rather than host-side query granularity.
const defaultBucketCellSize = 10

var (
	solveSeed                 uint64
	solveSteps                int
	solvePropagate            int
	solveBranching            int
	solveRepulsion            float64
	solveNeighborRadiusFactor float64
	solveValidity             string
	solveOrder                string
)

var solveCmd = &cobra.Command{
	Use:   "solve <db.json>",
	Short: "Run sc_propagate then wfc_solve against an in-memory scene",
	Args:  cobra.ExactArgs(1),
	RunE:  runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().Uint64Var(&solveSeed, "seed", 1, "RNG seed")
	solveCmd.Flags().IntVar(&solveSteps, "steps", 100, "wfc_solve step budget")
	solveCmd.Flags().IntVar(&solvePropagate, "propagate", 10, "sc_propagate node count")
	solveCmd.Flags().IntVar(&solveBranching, "branching", scwfc.DefaultBranchingTrials, "per-Val placement trial budget")
	solveCmd.Flags().Float64Var(&solveRepulsion, "repulsion", 0, "sphere-repulsion strength applied during sc_propagate")
	solveCmd.Flags().Float64Var(&solveNeighborRadiusFactor, "neighbor-radius-factor", scwfc.DefaultNeighborRadiusFactor, "neighborhood radius multiplier")
	solveCmd.Flags().StringVar(&solveValidity, "validity", "correct", "validity mode: correct|approximate")
	solveCmd.Flags().StringVar(&solveOrder, "order", "entropy", "solving order: entropy|discovery")
}

func runSolve(cmd *cobra.Command, args []string) error {
	log := getLogger()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()

	db, err := objectdb.Load(f)
	if err != nil {
		return fmt.Errorf("load %s: %w", args[0], err)
	}

	cfg, err := buildSolveConfig()
	if err != nil {
		return err
	}

	host := scene.New(nil, defaultBucketCellSize)
	solver := scwfc.New(cfg, db, host, solveSeed, log)
	defer solver.Close()

	log.Info("sc_propagate: n=%d branching=%d repulsion=%.3f", solvePropagate, solveBranching, solveRepulsion)
	solver.SCPropagate(solvePropagate, solveBranching, solveRepulsion)

	log.Info("wfc_solve: steps=%d", solveSteps)
	solver.WFCSolve(solveSteps)
	solver.ReevaluateValidity()

	finalized, destroyed := 0, 0
	for _, id := range solver.Discovered() {
		switch {
		case solver.IsFinalized(id):
			finalized++
		case solver.IsDestroyed(id):
			destroyed++
		}
	}
	fmt.Printf("discovered=%d finalized=%d destroyed=%d\n", len(solver.Discovered()), finalized, destroyed)

	snap := diagnostics.BuildSnapshot(solver, host)
	mst, total, err := diagnostics.ConnectivityReport(snap)
	if err != nil {
		log.Warn("connectivity report unavailable: %v", err)
		return nil
	}
	fmt.Printf("connectivity: %d MST edges, total weight %.2f\n", len(mst), total)
	return nil
}

func buildSolveConfig() (scwfc.Config, error) {
	cfg := scwfc.Config{
		NeighborRadiusFactor: solveNeighborRadiusFactor,
		BranchingTrials:      solveBranching,
	}

	switch solveValidity {
	case "correct":
		cfg.ValidityMode = scwfc.Correct
	case "approximate":
		cfg.ValidityMode = scwfc.Approximate
	default:
		return cfg, fmt.Errorf("unknown validity mode: %q (valid: correct, approximate)", solveValidity)
	}

	switch solveOrder {
	case "entropy":
		cfg.SolvingOrder = scwfc.EntropyOrder
	case "discovery":
		cfg.SolvingOrder = scwfc.DiscoveryOrder
	default:
		return cfg, fmt.Errorf("unknown solving order: %q (valid: entropy, discovery)", solveOrder)
	}

	return cfg, nil
}
