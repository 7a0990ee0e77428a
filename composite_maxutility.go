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

// MaxUtility picks, on each OnPrepare, the subplan with maximum Utility (ties
// broken by first occurrence in sorted-name order). If a different subplan is
// currently active it is exited first, then the chosen one is entered. It is
// meant for a plan with no transitions and at most one active subplan at a
// time (§4.2.7).
type MaxUtility struct {
	BaseBehaviour

	chosen string
	has    bool
}

func (m *MaxUtility) OnPrepare(plan *Plan) {
	subs := plan.Plans()
	if len(subs) == 0 {
		m.has = false
		return
	}
	best := subs[0]
	bestUtility := best.Utility()
	for _, s := range subs[1:] {
		if u := s.Utility(); u > bestUtility {
			best, bestUtility = s, u
		}
	}
	if current, ok := plan.activeChild(); ok && current != best.name {
		plan.ExitPlan(current)
	}
	plan.EnterPlan(best.name)
	m.chosen, m.has = best.name, true
}

// Status returns the active subplan's status, or Running if none is active.
func (m *MaxUtility) Status(plan *Plan) Status {
	if name, ok := plan.activeChild(); ok {
		if sub, ok := plan.get(name); ok {
			return sub.Status()
		}
	}
	return Running
}

// Utility returns the chosen subplan's utility, or 0 if there are no
// subplans (§8's boundary test 8).
func (m *MaxUtility) Utility(plan *Plan) float64 {
	if !m.has {
		return 0
	}
	sub, ok := plan.get(m.chosen)
	if !ok {
		return 0
	}
	return sub.Utility()
}
