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

import "testing"

func TestStatus_String(t *testing.T) {
	for _, tc := range []struct {
		status Status
		want   string
	}{
		{Running, `running`},
		{Success, `success`},
		{Failure, `failure`},
		{Status(99), `running`},
	} {
		if s := tc.status.String(); s != tc.want {
			t.Errorf(`Status(%d).String() = %q, want %q`, tc.status, s, tc.want)
		}
	}
}

func TestStatusBool(t *testing.T) {
	for _, tc := range []struct {
		status Status
		value  bool
		ok     bool
	}{
		{Running, false, false},
		{Success, true, true},
		{Failure, false, true},
	} {
		value, ok := statusBool(tc.status)
		if value != tc.value || ok != tc.ok {
			t.Errorf(`statusBool(%v) = (%v, %v), want (%v, %v)`, tc.status, value, ok, tc.value, tc.ok)
		}
	}
}

func TestBoolStatus(t *testing.T) {
	if s := boolStatus(true); s != Success {
		t.Errorf(`boolStatus(true) = %v, want Success`, s)
	}
	if s := boolStatus(false); s != Failure {
		t.Errorf(`boolStatus(false) = %v, want Failure`, s)
	}
}
