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

// EvaluateStatus composes two predicates into a status: Failure if F holds;
// else Success if T holds; else Running. F is checked first, so it dominates
// T (§4.2.1).
type EvaluateStatus struct {
	BaseBehaviour
	T Predicate
	F Predicate
}

func (e EvaluateStatus) Status(plan *Plan) Status {
	if e.F != nil && e.F.Evaluate(plan, nil) {
		return Failure
	}
	if e.T != nil && e.T.Evaluate(plan, nil) {
		return Success
	}
	return Running
}

// AllSuccessStatus is EvaluateStatus(AllSuccess, AnyFailure) applied to the
// plan's own subplan set (§4.2.2) — the canonical Sequence status function.
type AllSuccessStatus struct{ BaseBehaviour }

func (AllSuccessStatus) Status(plan *Plan) Status {
	return EvaluateStatus{T: AllSuccess{}, F: AnyFailure{}}.Status(plan)
}

// AnySuccessStatus is EvaluateStatus(AnySuccess, AllFailure) applied to the
// plan's own subplan set (§4.2.2) — the canonical Fallback status function.
type AnySuccessStatus struct{ BaseBehaviour }

func (AnySuccessStatus) Status(plan *Plan) Status {
	return EvaluateStatus{T: AnySuccess{}, F: AllFailure{}}.Status(plan)
}
