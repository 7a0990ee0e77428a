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

// Repeat wraps Inner to re-run it up to Iterations times, gated by Condition
// (nil condition means always true). It holds its own terminal Status,
// initially Running, and reaches a terminal Success/Failure only once —
// either because Inner's status matched Retry (the configured stop signal)
// or because iterations/condition ran out (§4.2.5).
//
// Retry=false gives a standard loop-until-failure (Inner succeeding is the
// "keep going" signal, failure terminates the wrapper with failure).
// Retry=true gives a retry-until-success semantic.
type Repeat struct {
	Inner      Behaviour
	Condition  Predicate
	Iterations int
	Retry      bool

	status      Status
	remaining   int
	innerActive bool
}

func (r *Repeat) OnEntry(plan *Plan) {
	r.status = Running
	r.remaining = r.Iterations
	r.Inner.OnEntry(plan)
	r.innerActive = true
}

func (r *Repeat) OnExit(plan *Plan) {
	if r.innerActive {
		r.Inner.OnExit(plan)
		r.innerActive = false
	}
}

func (r *Repeat) OnPrepare(plan *Plan) {
	if r.status != Running {
		return
	}
	if !r.gate(plan) {
		r.status = boolStatus(!r.Retry)
		return
	}
	r.Inner.OnPrepare(plan)
}

func (r *Repeat) OnRun(plan *Plan) {
	if r.status != Running {
		return
	}
	if !r.gate(plan) {
		r.status = boolStatus(!r.Retry)
		return
	}
	r.Inner.OnRun(plan)
	inner := r.Inner.Status(plan)
	if inner == Running {
		return
	}
	if inner == boolStatus(r.Retry) {
		r.status = inner
		return
	}
	// completed iteration: unequal to the retry signal and not Running.
	r.remaining--
	r.Inner.OnExit(plan)
	r.innerActive = false
	r.Inner.OnEntry(plan)
	r.innerActive = true
}

func (r *Repeat) Status(*Plan) Status { return r.status }

func (r *Repeat) Utility(plan *Plan) float64 { return r.Inner.Utility(plan) }

// gate reports whether another iteration may proceed: budget remains and the
// (optional) condition holds.
func (r *Repeat) gate(plan *Plan) bool {
	if r.remaining <= 0 {
		return false
	}
	if r.Condition != nil && !r.Condition.Evaluate(plan, nil) {
		return false
	}
	return true
}
