/*
   Copyright 2021 Joseph Cumines

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

// Package dpt implements a reusable engine for executing hierarchical behaviour
// trees. A tree is a recursively nested set of Plan values; each Plan carries an
// optional Behaviour (custom logic run while the plan is active), a sorted set of
// subplans, and an ordered list of predicate-guarded Transitions between subsets
// of its subplans.
//
// The engine drives the tree tick-by-tick via Plan.Run: it decides which plans
// are active, evaluates transitions, invokes lifecycle callbacks in a fixed
// order, and aggregates status/utility back up the tree. See Plan for the
// lifecycle and tick algorithm, and Behaviour/Predicate for the extensibility
// contract.
package dpt
