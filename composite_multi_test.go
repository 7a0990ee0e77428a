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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMulti_Status(t *testing.T) {
	root := NewStub(`root`, false)
	for _, tc := range []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{`all success`, []Status{Success, Success}, Success},
		{`one failure short-circuits`, []Status{Success, Failure, Running}, Failure},
		{`running with no failures`, []Status{Success, Running}, Running},
		{`empty`, nil, Success},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var behaviours []Behaviour
			for _, s := range tc.statuses {
				behaviours = append(behaviours, &fixedStatusBehaviour{status: s})
			}
			m := Multi{Behaviours: behaviours}
			require.Equal(t, tc.want, m.Status(root))
		})
	}
}

func TestMulti_UtilitySums(t *testing.T) {
	root := NewStub(`root`, false)
	m := Multi{Behaviours: []Behaviour{
		&spyBehaviour{utility: 1.5},
		&spyBehaviour{utility: 2.5},
	}}
	require.Equal(t, 4.0, m.Utility(root))
}

func TestMulti_BroadcastsLifecycleInOrder(t *testing.T) {
	a, b := &spyBehaviour{}, &spyBehaviour{}
	m := Multi{Behaviours: []Behaviour{a, b}}
	root := NewStub(`root`, false)
	m.OnEntry(root)
	m.OnPrepare(root)
	m.OnRun(root)
	m.OnExit(root)
	require.Equal(t, []string{`entry`, `prepare`, `run`, `exit`}, a.calls)
	require.Equal(t, []string{`entry`, `prepare`, `run`, `exit`}, b.calls)
}
