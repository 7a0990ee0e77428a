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

type customBehaviour struct {
	BaseBehaviour
	Label string `json:"label"`
}

type customPredicate struct {
	Threshold int `json:"threshold"`
}

func (c *customPredicate) Evaluate(*Plan, []string) bool { return c.Threshold > 0 }

func TestConfiguration_RegisterAndLookup(t *testing.T) {
	cfg := NewConfiguration()
	require.NoError(t, cfg.RegisterBehaviour(`custom`, func() Behaviour { return &customBehaviour{} }))
	require.NoError(t, cfg.RegisterPredicate(`custom`, func() Predicate { return &customPredicate{} }))

	factory, ok := cfg.behaviourFactory(`custom`)
	require.True(t, ok)
	require.IsType(t, &customBehaviour{}, factory())

	name, ok := cfg.behaviourName(&customBehaviour{})
	require.True(t, ok)
	require.Equal(t, `custom`, name)

	pFactory, ok := cfg.predicateFactory(`custom`)
	require.True(t, ok)
	require.IsType(t, &customPredicate{}, pFactory())

	pName, ok := cfg.predicateName(&customPredicate{})
	require.True(t, ok)
	require.Equal(t, `custom`, pName)
}

func TestConfiguration_DuplicateRegistrationErrors(t *testing.T) {
	cfg := NewConfiguration()
	require.NoError(t, cfg.RegisterBehaviour(`custom`, func() Behaviour { return &customBehaviour{} }))
	err := cfg.RegisterBehaviour(`custom`, func() Behaviour { return &customBehaviour{} })
	require.Error(t, err)

	require.NoError(t, cfg.RegisterPredicate(`custom`, func() Predicate { return &customPredicate{} }))
	err = cfg.RegisterPredicate(`custom`, func() Predicate { return &customPredicate{} })
	require.Error(t, err)
}

func TestConfiguration_UnknownLookupMisses(t *testing.T) {
	cfg := NewConfiguration()
	_, ok := cfg.behaviourFactory(`nonexistent`)
	require.False(t, ok)
	_, ok = cfg.predicateFactory(`nonexistent`)
	require.False(t, ok)
}
