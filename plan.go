/*
   Copyright 2024 Joseph Cumines

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package dpt

import (
	"context"
	"math"
	"sort"

	"github.com/xlab/treeprint"
)

// MaxCountdown is the sentinel run_countdown value that encodes an inactive
// plan (§3). An active plan's run_countdown is always in [0, RunInterval].
const MaxCountdown = math.MaxInt

// Plan is the sole aggregate entity of the tree: a node carrying an optional
// Behaviour, a sorted set of subplans, a list of Transitions between subsets
// of those subplans, and a free-form data payload (§3). Plan exclusively owns
// its behaviour, transitions, subplans and data; subplans hold no
// back-reference to their parent.
type Plan struct {
	name         string
	runCountdown int
	runInterval  int
	autostart    bool
	behaviour    Behaviour
	transitions  []Transition
	plans        []*Plan
	data         map[string]any

	tracer Tracer
	span   Span
	ctx    context.Context
}

// New constructs a new, inactive Plan carrying behaviour. A zero runInterval
// disables OnRun/OnPrepare entirely for this plan (subplans still tick).
func New(name string, behaviour Behaviour, runInterval int, autostart bool) *Plan {
	return &Plan{
		name:         name,
		runCountdown: MaxCountdown,
		runInterval:  runInterval,
		autostart:    autostart,
		behaviour:    behaviour,
		tracer:       NoopTracer{},
		ctx:          context.Background(),
	}
}

// NewStub constructs a new, inactive Plan with no behaviour — a pure
// structural node, useful as a placeholder created by EnterPlan or tests.
func NewStub(name string, autostart bool) *Plan {
	return New(name, nil, 0, autostart)
}

// Name returns the plan's identifier, unique within its parent's subplans.
func (p *Plan) Name() string { return p.name }

// Active reports whether the plan's lifecycle is currently inside its
// entry/exit brackets (§3: active ⇔ run_countdown < MaxCountdown).
func (p *Plan) Active() bool { return p.runCountdown < MaxCountdown }

// RunInterval returns the configured tick budget between OnRun invocations.
func (p *Plan) RunInterval() int { return p.runInterval }

// Autostart reports whether this plan is entered automatically when its
// parent enters.
func (p *Plan) Autostart() bool { return p.autostart }

// SetBehaviour replaces the plan's behaviour slot outright. It is the
// caller's responsibility not to call this from within one of the old or new
// behaviour's own callbacks.
func (p *Plan) SetBehaviour(b Behaviour) { p.behaviour = b }

// Behaviour returns the current behaviour slot (nil for a stub, and nil while
// a callback is executing on this plan per the reentrancy discipline of §4.3.2).
func (p *Plan) Behaviour() Behaviour { return p.behaviour }

// Data returns the plan's free-form string-keyed payload, lazily initialising
// it on first access.
func (p *Plan) Data() map[string]any {
	if p.data == nil {
		p.data = make(map[string]any)
	}
	return p.data
}

// Transitions returns the plan's ordered transition list.
func (p *Plan) Transitions() []Transition { return p.transitions }

// SetTransitions replaces the plan's transition list outright.
func (p *Plan) SetTransitions(transitions []Transition) { p.transitions = transitions }

// AddTransition appends a transition to the plan's transition list.
func (p *Plan) AddTransition(t Transition) { p.transitions = append(p.transitions, t) }

// Plans returns the subplan list, sorted by name. Callers must not mutate the
// returned slice; use Insert/Remove.
func (p *Plan) Plans() []*Plan { return p.plans }

// SetTracer installs the Tracer used to open spans for this plan and any
// subplan later inserted beneath it (inherited at Insert time). Intended to
// be called on a tree's root before its first Enter/Run.
func (p *Plan) SetTracer(t Tracer) { p.tracer = t }

// Status delegates to the behaviour (Running for a stub), temporarily
// vacating the behaviour slot per the reentrancy discipline of §4.3.2.
func (p *Plan) Status() Status {
	if p.behaviour == nil {
		return Running
	}
	b := p.behaviour
	p.behaviour = nil
	defer func() { p.behaviour = b }()
	return b.Status(p)
}

// Utility delegates to the behaviour (0 for a stub), with the same vacating
// discipline as Status.
func (p *Plan) Utility() float64 {
	if p.behaviour == nil {
		return 0
	}
	b := p.behaviour
	p.behaviour = nil
	defer func() { p.behaviour = b }()
	return b.Utility(p)
}

// search performs the binary-search lookup over the sorted subplan list
// described by spec.md §4.3's Priority/Get operation.
func (p *Plan) search(name string) (idx int, found bool) {
	idx = sort.Search(len(p.plans), func(i int) bool { return p.plans[i].name >= name })
	found = idx < len(p.plans) && p.plans[idx].name == name
	return
}

func (p *Plan) get(name string) (*Plan, bool) {
	idx, found := p.search(name)
	if !found {
		return nil, false
	}
	return p.plans[idx], true
}

// Get performs a binary-search lookup of an immediate subplan by name.
func (p *Plan) Get(name string) (*Plan, bool) { return p.get(name) }

// activeChild returns the name of the (at most one, by convention) currently
// active subplan, used by MaxUtility and the Sequence/Fallback chain logic.
func (p *Plan) activeChild() (string, bool) {
	for _, c := range p.plans {
		if c.Active() {
			return c.name, true
		}
	}
	return "", false
}

// Insert inserts child at its sorted position. If a subplan with that name
// already exists it is replaced (forcing the replaced subplan's exit, if
// active, first). If this plan is active and child is already active, the
// child's tracing parent is re-homed; if this plan is active and child is
// inactive but autostart, the child is entered; if this plan is inactive, an
// active child is forced to exit before insertion so the "active implies
// parent active" invariant holds. Returns the inserted subplan (child).
func (p *Plan) Insert(child *Plan) *Plan {
	idx, found := p.search(child.name)
	if found {
		replaced := p.plans[idx]
		if replaced.Active() {
			replaced.Exit(false)
		}
	}
	if p.isNoopTracer(child) {
		child.tracer = p.tracer
	}
	if p.Active() {
		if child.Active() {
			ctx, span := p.span.Child(p.ctx, child.name)
			child.ctx, child.span = ctx, span
		} else if child.autostart {
			child.enter(p.ctx, p.span)
		}
	} else if child.Active() {
		child.Exit(false)
	}
	if found {
		p.plans[idx] = child
	} else {
		p.plans = append(p.plans, nil)
		copy(p.plans[idx+1:], p.plans[idx:])
		p.plans[idx] = child
	}
	p.event(`insert`, Attr{Key: `name`, Value: child.name})
	return child
}

func (p *Plan) isNoopTracer(child *Plan) bool {
	_, ok := child.tracer.(NoopTracer)
	return ok || child.tracer == nil
}

// Remove removes and returns the subplan registered under name, forcing its
// exit first if it is active.
func (p *Plan) Remove(name string) (*Plan, bool) {
	idx, found := p.search(name)
	if !found {
		return nil, false
	}
	child := p.plans[idx]
	p.plans = append(p.plans[:idx], p.plans[idx+1:]...)
	if child.Active() {
		child.Exit(false)
	}
	p.event(`remove`, Attr{Key: `name`, Value: name})
	return child, true
}

// EnterPlan locates (creating a stub if missing) and enters the named
// subplan, returning it. If this plan is inactive, it is a no-op per §4.3's
// "only active plans enter children" invariant.
func (p *Plan) EnterPlan(name string) (*Plan, bool) {
	if !p.Active() {
		return nil, false
	}
	child, ok := p.get(name)
	if !ok {
		child = NewStub(name, false)
		p.Insert(child)
	}
	child.enter(p.ctx, p.span)
	return child, true
}

// ExitPlan locates and forces the exit of the named subplan, returning it.
func (p *Plan) ExitPlan(name string) (*Plan, bool) {
	child, ok := p.get(name)
	if !ok {
		return nil, false
	}
	if child.Active() {
		child.Exit(false)
	}
	return child, true
}

// Enter activates the plan: if already active, returns false and mutates
// nothing. Otherwise opens a root tracing span (since no parent span is
// supplied), fires OnEntry, then recursively enters every autostart subplan.
func (p *Plan) Enter(ctx context.Context) bool { return p.enter(ctx, nil) }

func (p *Plan) enter(ctx context.Context, parent Span) bool {
	if p.Active() {
		return false
	}
	if parent != nil {
		p.ctx, p.span = parent.Child(ctx, p.name)
	} else {
		p.ctx, p.span = p.tracer.Start(ctx, p.name)
	}
	p.runCountdown = 0
	p.event(`enter`)
	p.invoke(func(b Behaviour) { b.OnEntry(p) })
	for _, child := range p.plans {
		if child.autostart {
			child.enter(p.ctx, p.span)
		}
	}
	return true
}

// Exit deactivates the plan: if already inactive, returns false and mutates
// nothing. Otherwise recursively exits every active subplan first, then (if
// excludeSelf is false) fires OnExit, resets run_countdown to MaxCountdown,
// and closes the tracing span.
func (p *Plan) Exit(excludeSelf bool) bool {
	if !p.Active() {
		return false
	}
	for _, child := range p.plans {
		if child.Active() {
			child.Exit(false)
		}
	}
	if !excludeSelf {
		p.event(`exit`)
		p.invoke(func(b Behaviour) { b.OnExit(p) })
		p.runCountdown = MaxCountdown
		if p.span != nil {
			p.span.End()
			p.span = nil
		}
	}
	return true
}

// invoke dispatches a lifecycle callback to the current behaviour, vacating
// the behaviour slot for the duration of the call (§4.3.2): the callback
// receives full mutable access to the plan (including to methods that would
// otherwise borrow the behaviour), and must not rely on recovering itself
// through the plan. The slot is always restored, including on panic unwind.
func (p *Plan) invoke(fn func(Behaviour)) {
	if p.behaviour == nil {
		return
	}
	b := p.behaviour
	p.behaviour = nil
	defer func() { p.behaviour = b }()
	fn(b)
}

func (p *Plan) event(name string, attrs ...Attr) {
	if p.span != nil {
		p.span.Event(name, attrs...)
	}
}

// String renders the plan's whole subtree, labelling every plan as active or
// inactive together with its status, in the manner of go-behaviortree's
// treeprint-backed Node.String().
func (p *Plan) String() string {
	tree := treeprint.New()
	p.printTree(tree)
	return tree.String()
}

func (p *Plan) printTree(tree treeprint.Tree) {
	node := tree.AddBranch(p.label())
	for _, child := range p.plans {
		child.printTree(node)
	}
}

func (p *Plan) label() string {
	state := `inactive`
	if p.Active() {
		state = `active`
	}
	return p.name + ` [` + state + ` ` + p.Status().String() + `]`
}

// Cast recovers a concrete behaviour type from p's behaviour slot. Go has no
// closed sum types; per spec.md §9's sanctioned fallback this is a type
// assertion rather than a tagged-variant downcast, and returns ok=false on
// mismatch (including when the slot is currently vacated by a callback in
// progress — a behaviour must not rely on recovering itself this way).
func Cast[T Behaviour](p *Plan) (T, bool) {
	return cast[T](p.behaviour)
}
