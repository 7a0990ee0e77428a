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

import "reflect"

// BehaviourFactory constructs a fresh, zero-valued instance of a registered
// Behaviour variant, for use as the unmarshal target during deserialization.
// It must return a pointer type (e.g. &MyBehaviour{}) so json.Unmarshal can
// populate its exported fields.
type BehaviourFactory func() Behaviour

// PredicateFactory is the Predicate analogue of BehaviourFactory.
type PredicateFactory func() Predicate

// Configuration binds the concrete Behaviour and Predicate variant-sets a
// tree uses to a serialization registry, per spec.md §6: it supplies the
// discriminator ↔ concrete-type mapping that lets user-defined variants be
// lifted into the open Behaviour/Predicate interfaces and round-tripped as
// tagged JSON. It also carries the Tracer new plans should inherit.
type Configuration struct {
	Tracer Tracer

	behaviourFactories map[string]BehaviourFactory
	behaviourNames     map[reflect.Type]string
	predicateFactories map[string]PredicateFactory
	predicateNames     map[reflect.Type]string
}

// NewConfiguration constructs an empty Configuration with a no-op Tracer.
// Canonical variants (the closed combinator/composite sets) round-trip
// without registration; call RegisterBehaviour/RegisterPredicate only to add
// user-defined variants before serializing a tree that uses them.
func NewConfiguration() *Configuration {
	return &Configuration{
		Tracer:             NoopTracer{},
		behaviourFactories: make(map[string]BehaviourFactory),
		behaviourNames:     make(map[reflect.Type]string),
		predicateFactories: make(map[string]PredicateFactory),
		predicateNames:     make(map[reflect.Type]string),
	}
}

// RegisterBehaviour registers a user-defined Behaviour variant under name,
// both directions: name → factory (for decode) and concrete type → name (for
// encode). Returns an error if name is already registered.
func (c *Configuration) RegisterBehaviour(name string, factory BehaviourFactory) error {
	if _, ok := c.behaviourFactories[name]; ok {
		return errDuplicateVariant(`behaviour`, name)
	}
	c.behaviourFactories[name] = factory
	c.behaviourNames[reflect.TypeOf(factory())] = name
	return nil
}

// RegisterPredicate is the Predicate analogue of RegisterBehaviour.
func (c *Configuration) RegisterPredicate(name string, factory PredicateFactory) error {
	if _, ok := c.predicateFactories[name]; ok {
		return errDuplicateVariant(`predicate`, name)
	}
	c.predicateFactories[name] = factory
	c.predicateNames[reflect.TypeOf(factory())] = name
	return nil
}

func (c *Configuration) behaviourFactory(name string) (BehaviourFactory, bool) {
	f, ok := c.behaviourFactories[name]
	return f, ok
}

func (c *Configuration) behaviourName(b Behaviour) (string, bool) {
	name, ok := c.behaviourNames[reflect.TypeOf(b)]
	return name, ok
}

func (c *Configuration) predicateFactory(name string) (PredicateFactory, bool) {
	f, ok := c.predicateFactories[name]
	return f, ok
}

func (c *Configuration) predicateName(p Predicate) (string, bool) {
	name, ok := c.predicateNames[reflect.TypeOf(p)]
	return name, ok
}
