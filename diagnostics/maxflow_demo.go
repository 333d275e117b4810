package diagnostics

import (
	"context"

	"github.com/hborlik/scwfc/graph"
	"github.com/hborlik/scwfc/maxflow"
)

// flowNode is a bare int64 handle satisfying graph.Node, used only to
// instantiate maxflow.MaxFlow's generic DenseGraph parameter for this
// demo — diagnostics has no node payload of its own to carry.
type flowNode int64

func (n flowNode) NodeID() int64 { return int64(n) }

// MaxFlowDemo builds a graph.DenseGraph of snap's vertices using
// capacity(a, b) for every directed pair and runs maxflow.MaxFlow from
// source to sink. Exists purely for completeness per spec.md §4.1; never
// on the solver's call path.
func MaxFlowDemo(snap *Snapshot, source, sink int64, capacity func(a, b int64) float64) (float64, error) {
	dg := graph.NewDense[flowNode](snap.IDs, true)
	for _, a := range snap.IDs {
		for _, b := range snap.IDs {
			if a == b {
				continue
			}
			if c := capacity(a, b); c > 0 {
				if err := dg.SetEdge(a, b, c); err != nil {
					return 0, err
				}
			}
		}
	}

	flow, _, err := maxflow.MaxFlow[flowNode](context.Background(), dg, source, sink, nil)
	return flow, err
}
