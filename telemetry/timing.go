package telemetry

import (
	"io"
	"sync"
	"time"
)

// TimingCollector records timers as a tree.
//
// Start nests a new timer under the most recent unfinished top-level timer,
// which matches sequential command code. Work fanned out to goroutines should
// use Child (or StartTimer with a root timer) instead.
type TimingCollector struct {
	mu      sync.Mutex
	roots   []*timerNode
	current *timerNode
}

type timerNode struct {
	name     string
	start    time.Time
	end      time.Time
	children []*timerNode
	parent   *timerNode
}

func (n *timerNode) duration() time.Duration {
	if n.end.IsZero() {
		return 0
	}
	return n.end.Sub(n.start)
}

// NewTimingCollector creates an empty collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

// Start begins timing an operation.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &timerNode{name: name, start: time.Now()}

	if c.current == nil {
		c.roots = append(c.roots, node)
	} else {
		node.parent = c.current
		c.current.children = append(c.current.children, node)
	}
	c.current = node

	return &timingTimer{collector: c, node: node}
}

// Report writes the timing tree to w. Nothing is written when no timer was
// started.
func (c *TimingCollector) Report(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, root := range c.roots {
		formatTimingTree(w, root)
	}
}

type timingTimer struct {
	collector *TimingCollector
	node      *timerNode
	once      sync.Once
}

func (t *timingTimer) End() {
	t.once.Do(func() {
		t.collector.mu.Lock()
		defer t.collector.mu.Unlock()

		t.node.end = time.Now()
		if t.collector.current == t.node {
			t.collector.current = t.node.parent
		}
	})
}

func (t *timingTimer) Child(name string) Timer {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	node := &timerNode{
		name:   name,
		start:  time.Now(),
		parent: t.node,
	}
	t.node.children = append(t.node.children, node)

	return &timingTimer{collector: t.collector, node: node}
}
