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
	"sync"

	"github.com/cockroachdb/errors"
)

// Run performs one tick of the tree rooted at p, recursing into active
// subplans serially in sorted name order (§4.3.1, §5). It is the normal
// entry point for driving a tree; call it repeatedly (e.g. from a ticker).
func (p *Plan) Run(ctx context.Context) error { return p.run(ctx, false) }

// RunParallel performs one tick exactly like Run, except recursion into
// active subplans (step 6 of §4.3.1) executes concurrently across siblings,
// per the optional parallel mode of §5. A panic raised by a behaviour
// callback of any subplan run on its own goroutine is recovered at join time
// and surfaced as a combined error from the root call (§7), rather than
// crashing the process. A panic from p's own callbacks, or from transition
// predicates evaluated on p, is not recovered and propagates to the caller.
func (p *Plan) RunParallel(ctx context.Context) error { return p.run(ctx, true) }

func (p *Plan) run(ctx context.Context, parallel bool) error {
	// 1. self-enter
	if !p.Active() {
		p.enter(ctx, nil)
	}
	p.event(`tick`)

	// 2. snapshot active set
	active := make(map[string]struct{}, len(p.plans))
	for _, c := range p.plans {
		if c.Active() {
			active[c.name] = struct{}{}
		}
	}

	// 3. evaluate transitions, vacating the transition list for the duration
	// so firing a transition can freely call Enter/ExitPlan on p.
	transitions := p.transitions
	p.transitions = nil
	for _, t := range transitions {
		if t.matchesActive(active) && t.Predicate != nil && t.Predicate.Evaluate(p, t.Src) {
			p.fireTransition(t)
		}
	}
	p.transitions = transitions

	// 4. prepare self
	if p.runInterval > 0 && p.runCountdown == 0 {
		p.event(`prepare`)
		p.invoke(func(b Behaviour) { b.OnPrepare(p) })
	}

	// 5. reentrancy check: OnPrepare may have exited this plan.
	if !p.Active() {
		return nil
	}

	// 6. recurse into active subplans
	var children []*Plan
	for _, c := range p.plans {
		if c.Active() {
			children = append(children, c)
		}
	}
	var err error
	if parallel {
		err = p.runChildrenParallel(children)
	} else {
		for _, c := range children {
			if e := c.run(c.ctx, false); e != nil {
				err = errors.CombineErrors(err, e)
			}
		}
	}

	// 7. interval gate
	if p.runInterval == 0 {
		return err
	}
	if p.runCountdown == 0 {
		p.event(`run`)
		p.invoke(func(b Behaviour) { b.OnRun(p) })
		p.runCountdown = p.runInterval
	}
	p.runCountdown--
	return err
}

// fireTransition fires t: every name in Src∖Dst is exited, then every name in
// Dst∖Src is entered. All exits for a given transition precede all entries
// for that same transition (§5).
func (p *Plan) fireTransition(t Transition) {
	p.event(`transition`, Attr{Key: `src`, Value: t.Src}, Attr{Key: `dst`, Value: t.Dst})
	for _, name := range setDifference(t.Src, t.Dst) {
		p.ExitPlan(name)
	}
	for _, name := range setDifference(t.Dst, t.Src) {
		p.EnterPlan(name)
	}
}

func (p *Plan) runChildrenParallel(children []*Plan) error {
	if len(children) == 0 {
		return nil
	}
	var wg sync.WaitGroup
	errs := make([]error, len(children))
	wg.Add(len(children))
	for i, c := range children {
		i, c := i, c
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = wrapTickPanic(c.name, r)
				}
			}()
			errs[i] = c.run(c.ctx, true)
		}()
	}
	wg.Wait()
	var combined error
	for _, e := range errs {
		if e != nil {
			combined = errors.CombineErrors(combined, e)
		}
	}
	return combined
}
