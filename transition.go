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

// Transition is a predicate-guarded set-to-set move between subplans of a
// Plan: when every name in Src is currently active and Predicate holds over
// (plan, Src), the transition fires, exiting every name in Src∖Dst and
// entering every name in Dst∖Src (§3, §4.3.1).
type Transition struct {
	Src       []string
	Dst       []string
	Predicate Predicate
}

// NewTransition builds a Transition, deduplicating Src/Dst by name (each name
// keeps the position of its first occurrence) since spec.md §9 leaves duplicate handling as undefined
// behaviour upstream and asks implementers to assert or deduplicate.
func NewTransition(src, dst []string, predicate Predicate) Transition {
	return Transition{Src: dedupNames(src), Dst: dedupNames(dst), Predicate: predicate}
}

func dedupNames(names []string) []string {
	if len(names) < 2 {
		return names
	}
	seen := make(map[string]int, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if idx, ok := seen[n]; ok {
			out[idx] = n
			continue
		}
		seen[n] = len(out)
		out = append(out, n)
	}
	return out
}

// matchesActive reports whether every name in t.Src is present in active.
func (t Transition) matchesActive(active map[string]struct{}) bool {
	for _, name := range t.Src {
		if _, ok := active[name]; !ok {
			return false
		}
	}
	return true
}

// setDifference returns the elements of a not present in b, preserving a's
// order. Used for the Src∖Dst / Dst∖Src set operations of §4.3.1.
func setDifference(a, b []string) []string {
	if len(a) == 0 {
		return nil
	}
	exclude := make(map[string]struct{}, len(b))
	for _, name := range b {
		exclude[name] = struct{}{}
	}
	var out []string
	for _, name := range a {
		if _, ok := exclude[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}
