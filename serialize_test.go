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

func TestPredicateRoundTrip_Canonical(t *testing.T) {
	cfg := NewConfiguration()
	for _, p := range []Predicate{
		nil,
		True,
		False,
		AllSuccess{},
		AnySuccess{},
		AllFailure{},
		AnyFailure{},
		And{True, False},
		Or{True, False},
		Xor{True, False, True},
		Nand{True, True},
		Nor{False, False},
		Xnor{True, False},
		Not{Predicate: True},
		And{Not{Predicate: Or{True, False}}, AllSuccess{}},
	} {
		dto, err := cfg.EncodePredicate(p)
		require.NoError(t, err)
		got, err := cfg.DecodePredicate(dto)
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
}

func TestPredicateRoundTrip_Custom(t *testing.T) {
	cfg := NewConfiguration()
	require.NoError(t, cfg.RegisterPredicate(`custom`, func() Predicate { return &customPredicate{} }))

	p := &customPredicate{Threshold: 7}
	dto, err := cfg.EncodePredicate(p)
	require.NoError(t, err)
	require.Equal(t, `custom`, dto.Type)

	got, err := cfg.DecodePredicate(dto)
	require.NoError(t, err)
	require.Equal(t, p, got)
}

func TestPredicateRoundTrip_UnregisteredCustomFails(t *testing.T) {
	cfg := NewConfiguration()
	_, err := cfg.EncodePredicate(&customPredicate{Threshold: 1})
	require.Error(t, err)

	_, err = cfg.DecodePredicate(PredicateDTO{Type: `nonexistent`})
	require.Error(t, err)
}

func TestBehaviourRoundTrip_Canonical(t *testing.T) {
	cfg := NewConfiguration()
	for _, b := range []Behaviour{
		nil,
		AllSuccessStatus{},
		AnySuccessStatus{},
		EvaluateStatus{T: AllSuccess{}, F: AnyFailure{}},
		ModifyStatus{Inner: AllSuccessStatus{}},
		Multi{Behaviours: []Behaviour{AllSuccessStatus{}, AnySuccessStatus{}}},
		&Repeat{Inner: AllSuccessStatus{}, Condition: True, Iterations: 3, Retry: true},
		NewSequenceBehaviour(),
		NewFallbackBehaviour(),
		&MaxUtility{},
	} {
		dto, err := cfg.EncodeBehaviour(b)
		require.NoError(t, err)
		got, err := cfg.DecodeBehaviour(dto)
		require.NoError(t, err)
		require.Equal(t, b, got)
	}
}

func TestBehaviourRoundTrip_ModifyStatusOverride(t *testing.T) {
	cfg := NewConfiguration()
	override := true
	b := ModifyStatus{Inner: AllSuccessStatus{}, Override: &override}
	dto, err := cfg.EncodeBehaviour(b)
	require.NoError(t, err)
	got, err := cfg.DecodeBehaviour(dto)
	require.NoError(t, err)
	gotModify, ok := got.(ModifyStatus)
	require.True(t, ok)
	require.NotNil(t, gotModify.Override)
	require.Equal(t, true, *gotModify.Override)
}

func TestBehaviourRoundTrip_Custom(t *testing.T) {
	cfg := NewConfiguration()
	require.NoError(t, cfg.RegisterBehaviour(`custom`, func() Behaviour { return &customBehaviour{} }))

	b := &customBehaviour{Label: `hello`}
	dto, err := cfg.EncodeBehaviour(b)
	require.NoError(t, err)
	require.Equal(t, `custom`, dto.Type)

	got, err := cfg.DecodeBehaviour(dto)
	require.NoError(t, err)
	require.Equal(t, b, got)
}

func TestPlanRoundTrip_FullTree(t *testing.T) {
	cfg := NewConfiguration()
	root := New(`root`, NewSequenceBehaviour(), 2, true)
	root.Insert(New(`a`, EvaluateStatus{T: True}, 0, true))
	root.Insert(New(`b`, nil, 0, false))
	root.Data()[`label`] = `demo`
	root.SetTransitions([]Transition{
		NewTransition([]string{`a`}, []string{`b`}, And{True, AllSuccess{}}),
	})

	dto, err := cfg.EncodePlan(root)
	require.NoError(t, err)
	require.Equal(t, `root`, dto.Name)
	require.Equal(t, 2, dto.RunInterval)
	require.Len(t, dto.Plans, 2)

	got, err := cfg.DecodePlan(dto)
	require.NoError(t, err)
	require.Equal(t, `root`, got.Name())
	require.Equal(t, 2, got.RunInterval())
	require.True(t, got.Autostart())
	require.False(t, got.Active(), `a decoded plan must always be inactive`)
	require.Len(t, got.Plans(), 2)

	a, ok := got.Get(`a`)
	require.True(t, ok)
	require.True(t, a.Autostart())

	require.Equal(t, `demo`, got.Data()[`label`])
	require.Len(t, got.Transitions(), 1)
	require.Equal(t, []string{`a`}, got.Transitions()[0].Src)
}

func TestPlanRoundTrip_SubplansReorderedBySortOnDecode(t *testing.T) {
	cfg := NewConfiguration()
	dto := PlanDTO{
		Name: `root`,
		Plans: []PlanDTO{
			{Name: `c`},
			{Name: `a`},
			{Name: `b`},
		},
	}
	got, err := cfg.DecodePlan(dto)
	require.NoError(t, err)
	var names []string
	for _, c := range got.Plans() {
		names = append(names, c.Name())
	}
	require.Equal(t, []string{`a`, `b`, `c`}, names)
}
