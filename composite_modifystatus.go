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

// ModifyStatus forwards every callback to Inner. Its own Status is: Running if
// Inner is Running; else Override's value if Override is set; else the
// negation of Inner's status (§4.2.3).
type ModifyStatus struct {
	Inner    Behaviour
	Override *bool
}

func (m ModifyStatus) Status(plan *Plan) Status {
	inner := m.Inner.Status(plan)
	if inner == Running {
		return Running
	}
	if m.Override != nil {
		return boolStatus(*m.Override)
	}
	value, _ := statusBool(inner)
	return boolStatus(!value)
}

func (m ModifyStatus) Utility(plan *Plan) float64 { return m.Inner.Utility(plan) }
func (m ModifyStatus) OnEntry(plan *Plan)         { m.Inner.OnEntry(plan) }
func (m ModifyStatus) OnExit(plan *Plan)          { m.Inner.OnExit(plan) }
func (m ModifyStatus) OnPrepare(plan *Plan)       { m.Inner.OnPrepare(plan) }
func (m ModifyStatus) OnRun(plan *Plan)           { m.Inner.OnRun(plan) }
