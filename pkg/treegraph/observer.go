package treegraph

// Observer receives notifications from a [Series]. Callbacks run
// synchronously inside the pass that produced them; mutations a callback
// makes on the series are queued and applied after the pass.
type Observer interface {
	// NodeUpdated reports a node whose hidden flag changed. It does not
	// affect layout and fires before LayoutChanged.
	NodeUpdated(id string, hidden bool)

	// LayoutChanged reports a newly published pass result.
	LayoutChanged(r *Result)
}

// NoopObserver ignores all notifications.
type NoopObserver struct{}

func (NoopObserver) NodeUpdated(string, bool) {}
func (NoopObserver) LayoutChanged(*Result)    {}

// ObserverFuncs adapts plain functions to [Observer]. Nil fields are
// skipped.
type ObserverFuncs struct {
	OnNodeUpdated   func(id string, hidden bool)
	OnLayoutChanged func(r *Result)
}

func (o ObserverFuncs) NodeUpdated(id string, hidden bool) {
	if o.OnNodeUpdated != nil {
		o.OnNodeUpdated(id, hidden)
	}
}

func (o ObserverFuncs) LayoutChanged(r *Result) {
	if o.OnLayoutChanged != nil {
		o.OnLayoutChanged(r)
	}
}
