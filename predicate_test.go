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

func newTestSubplan(t *testing.T, root *Plan, name string, status Status) {
	t.Helper()
	root.Insert(New(name, &fixedStatusBehaviour{status: status}, 0, false))
}

type fixedStatusBehaviour struct {
	BaseBehaviour
	status Status
}

func (f *fixedStatusBehaviour) Status(*Plan) Status { return f.status }

func TestPredicate_Combinators(t *testing.T) {
	root := NewStub(`root`, false)

	require.True(t, True.Evaluate(root, nil))
	require.False(t, False.Evaluate(root, nil))
	require.False(t, Not{Predicate: True}.Evaluate(root, nil))
	require.True(t, Not{Predicate: False}.Evaluate(root, nil))

	require.True(t, And{True, True}.Evaluate(root, nil))
	require.False(t, And{True, False}.Evaluate(root, nil))
	require.True(t, Or{False, True}.Evaluate(root, nil))
	require.False(t, Or{False, False}.Evaluate(root, nil))

	require.True(t, Xor{True, False}.Evaluate(root, nil))
	require.False(t, Xor{True, True}.Evaluate(root, nil))
	require.True(t, Xor{True, True, True}.Evaluate(root, nil))

	require.False(t, Nand{True, True}.Evaluate(root, nil))
	require.True(t, Nand{True, False}.Evaluate(root, nil))
	require.True(t, Nor{False, False}.Evaluate(root, nil))
	require.False(t, Nor{False, True}.Evaluate(root, nil))
	require.True(t, Xnor{True, True}.Evaluate(root, nil))
	require.False(t, Xnor{True, False}.Evaluate(root, nil))
}

func TestPredicate_StatusAggregators(t *testing.T) {
	root := NewStub(`root`, false)
	newTestSubplan(t, root, `a`, Success)
	newTestSubplan(t, root, `b`, Success)
	require.True(t, (AllSuccess{}).Evaluate(root, nil))
	require.True(t, (AnySuccess{}).Evaluate(root, nil))
	require.False(t, (AllFailure{}).Evaluate(root, nil))
	require.False(t, (AnyFailure{}).Evaluate(root, nil))

	root2 := NewStub(`root2`, false)
	newTestSubplan(t, root2, `a`, Success)
	newTestSubplan(t, root2, `b`, Failure)
	require.False(t, (AllSuccess{}).Evaluate(root2, nil))
	require.True(t, (AnySuccess{}).Evaluate(root2, nil))
	require.False(t, (AllFailure{}).Evaluate(root2, nil))
	require.True(t, (AnyFailure{}).Evaluate(root2, nil))

	root3 := NewStub(`root3`, false)
	newTestSubplan(t, root3, `a`, Running)
	require.False(t, (AllSuccess{}).Evaluate(root3, nil))
	require.False(t, (AnySuccess{}).Evaluate(root3, nil))
	require.False(t, (AllFailure{}).Evaluate(root3, nil))
	require.False(t, (AnyFailure{}).Evaluate(root3, nil))
}

func TestPredicate_EffectiveSet_SrcFiltersMissingNames(t *testing.T) {
	root := NewStub(`root`, false)
	newTestSubplan(t, root, `a`, Success)
	require.True(t, (AllSuccess{}).Evaluate(root, []string{`a`, `nonexistent`}))
}
