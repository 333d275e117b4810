package matrix

// MatrixOptions configures how an adjacency matrix is built from an id/edge list.
//   - Directed:      treat edges as directed (true) or undirected (false).
//   - Weighted:      preserve edge weights when true; otherwise treat all edges as weight 1.
//   - AllowMulti:    include parallel edges when true; otherwise collapse duplicates.
//   - AllowLoops:    include self-loops when true; otherwise skip them.
//   - MetricClosure: fill missing edges with +Inf and run all-pairs shortest paths.
type MatrixOptions struct {
	Directed      bool
	Weighted      bool
	AllowMulti    bool
	AllowLoops    bool
	MetricClosure bool
}

// Option configures a MatrixOptions instance.
type Option func(*MatrixOptions)

// WithDirected returns an Option that sets the Directed field.
func WithDirected(d bool) Option { return func(o *MatrixOptions) { o.Directed = d } }

// WithWeighted returns an Option that sets the Weighted field.
func WithWeighted(w bool) Option { return func(o *MatrixOptions) { o.Weighted = w } }

// WithAllowMulti returns an Option that sets the AllowMulti field.
func WithAllowMulti(m bool) Option { return func(o *MatrixOptions) { o.AllowMulti = m } }

// WithAllowLoops returns an Option that sets the AllowLoops field.
func WithAllowLoops(l bool) Option { return func(o *MatrixOptions) { o.AllowLoops = l } }

// WithMetricClosure returns an Option that sets the MetricClosure field.
func WithMetricClosure(mc bool) Option { return func(o *MatrixOptions) { o.MetricClosure = mc } }

// NewMatrixOptions constructs a MatrixOptions with given Option functions applied.
// Defaults: Directed=false, Weighted=false, AllowMulti=true, AllowLoops=true, MetricClosure=false.
func NewMatrixOptions(opts ...Option) MatrixOptions {
	mo := MatrixOptions{AllowMulti: true, AllowLoops: true}
	for _, opt := range opts {
		opt(&mo)
	}
	return mo
}
