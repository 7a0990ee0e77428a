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

// Behaviour is the pluggable runtime logic a Plan may carry while active. All
// methods are optional in spirit (BaseBehaviour supplies no-op/zero-value
// defaults); Status must be queryable while the plan is inactive.
type Behaviour interface {
	// Status reports Running/Success/Failure. Must be queryable while inactive.
	Status(plan *Plan) Status
	// Utility reports a scalar preference value under current circumstances.
	// Must be queryable while inactive. Default 0.
	Utility(plan *Plan) float64
	// OnEntry fires once per activation, before any OnPrepare/OnRun.
	OnEntry(plan *Plan)
	// OnExit fires once per deactivation, after the last OnRun.
	OnExit(plan *Plan)
	// OnPrepare fires before subplan recursion, only on ticks where the
	// interval elapsed.
	OnPrepare(plan *Plan)
	// OnRun fires after subplan recursion, only on ticks where the interval
	// elapsed.
	OnRun(plan *Plan)
}

// BaseBehaviour is embedded by concrete behaviours to supply the
// "all optional except status" defaults: Running status, zero utility, and
// no-op lifecycle callbacks. Mirrors go-behaviortree's small-interface
// dispatch, where a Tick only needs to implement what it uses.
type BaseBehaviour struct{}

func (BaseBehaviour) Status(*Plan) Status   { return Running }
func (BaseBehaviour) Utility(*Plan) float64 { return 0 }
func (BaseBehaviour) OnEntry(*Plan)         {}
func (BaseBehaviour) OnExit(*Plan)          {}
func (BaseBehaviour) OnPrepare(*Plan)       {}
func (BaseBehaviour) OnRun(*Plan)           {}

// cast recovers a concrete behaviour type from the Behaviour slot. Go has no
// closed sum types, so per spec.md §9's explicitly sanctioned fallback this is
// a plain type assertion rather than a tagged-variant downcast; ok is false on
// mismatch (including when b is nil, e.g. a stub plan).
func cast[T Behaviour](b Behaviour) (T, bool) {
	var zero T
	if b == nil {
		return zero, false
	}
	v, ok := b.(T)
	return v, ok
}
