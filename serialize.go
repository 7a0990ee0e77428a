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
	"encoding/json"
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
)

// PredicateDTO is the tagged-variant wire representation of a Predicate
// (§6: "Behaviours and predicates serialize as tagged variants with the
// variant name as discriminator"). Canonical combinators nest their operands
// under Children; canonical leaf predicates (True/False/AllSuccess/...) carry
// neither Children nor Data; user-registered variants carry their exported
// fields as Data.
type PredicateDTO struct {
	Type     string          `json:"type"`
	Children []PredicateDTO  `json:"children,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// EncodePredicate converts p into its tagged-variant wire form.
func (c *Configuration) EncodePredicate(p Predicate) (PredicateDTO, error) {
	switch v := p.(type) {
	case nil:
		return PredicateDTO{}, nil
	case trueConst:
		return PredicateDTO{Type: `true`}, nil
	case falseConst:
		return PredicateDTO{Type: `false`}, nil
	case AllSuccess:
		return PredicateDTO{Type: `all_success`}, nil
	case AnySuccess:
		return PredicateDTO{Type: `any_success`}, nil
	case AllFailure:
		return PredicateDTO{Type: `all_failure`}, nil
	case AnyFailure:
		return PredicateDTO{Type: `any_failure`}, nil
	case And:
		return c.encodeChildren(`and`, []Predicate(v))
	case Or:
		return c.encodeChildren(`or`, []Predicate(v))
	case Xor:
		return c.encodeChildren(`xor`, []Predicate(v))
	case Nand:
		return c.encodeChildren(`nand`, []Predicate(v))
	case Nor:
		return c.encodeChildren(`nor`, []Predicate(v))
	case Xnor:
		return c.encodeChildren(`xnor`, []Predicate(v))
	case Not:
		child, err := c.EncodePredicate(v.Predicate)
		if err != nil {
			return PredicateDTO{}, err
		}
		return PredicateDTO{Type: `not`, Children: []PredicateDTO{child}}, nil
	default:
		name, ok := c.predicateName(p)
		if !ok {
			return PredicateDTO{}, errUnknownVariant(`predicate`, typeName(p))
		}
		data, err := json.Marshal(p)
		if err != nil {
			return PredicateDTO{}, errors.Wrapf(err, `dpt: encode predicate %q`, name)
		}
		return PredicateDTO{Type: name, Data: data}, nil
	}
}

func (c *Configuration) encodeChildren(tag string, preds []Predicate) (PredicateDTO, error) {
	children := make([]PredicateDTO, 0, len(preds))
	for _, p := range preds {
		child, err := c.EncodePredicate(p)
		if err != nil {
			return PredicateDTO{}, err
		}
		children = append(children, child)
	}
	return PredicateDTO{Type: tag, Children: children}, nil
}

// DecodePredicate reconstructs a Predicate from its tagged-variant wire form.
func (c *Configuration) DecodePredicate(dto PredicateDTO) (Predicate, error) {
	switch dto.Type {
	case ``:
		return nil, nil
	case `true`:
		return True, nil
	case `false`:
		return False, nil
	case `all_success`:
		return AllSuccess{}, nil
	case `any_success`:
		return AnySuccess{}, nil
	case `all_failure`:
		return AllFailure{}, nil
	case `any_failure`:
		return AnyFailure{}, nil
	case `and`, `or`, `xor`, `nand`, `nor`, `xnor`:
		children, err := c.decodeChildren(dto.Children)
		if err != nil {
			return nil, err
		}
		switch dto.Type {
		case `and`:
			return And(children), nil
		case `or`:
			return Or(children), nil
		case `xor`:
			return Xor(children), nil
		case `nand`:
			return Nand(children), nil
		case `nor`:
			return Nor(children), nil
		default:
			return Xnor(children), nil
		}
	case `not`:
		if len(dto.Children) != 1 {
			return nil, errors.Newf(`dpt: "not" predicate requires exactly one child, got %d`, len(dto.Children))
		}
		inner, err := c.DecodePredicate(dto.Children[0])
		if err != nil {
			return nil, err
		}
		return Not{Predicate: inner}, nil
	default:
		factory, ok := c.predicateFactory(dto.Type)
		if !ok {
			return nil, errUnknownVariant(`predicate`, dto.Type)
		}
		instance := factory()
		if len(dto.Data) != 0 {
			if err := json.Unmarshal(dto.Data, instance); err != nil {
				return nil, errors.Wrapf(err, `dpt: decode predicate %q`, dto.Type)
			}
		}
		return instance, nil
	}
}

func (c *Configuration) decodeChildren(dtos []PredicateDTO) ([]Predicate, error) {
	out := make([]Predicate, 0, len(dtos))
	for _, dto := range dtos {
		p, err := c.DecodePredicate(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// BehaviourDTO is the tagged-variant wire representation of a Behaviour.
// Canonical composites with nested Behaviour/Predicate fields encode those
// fields explicitly (Inner/Elements/T/F/Condition); leaf/user variants carry
// their exported fields as Data.
type BehaviourDTO struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Inner     *BehaviourDTO   `json:"inner,omitempty"`
	Elements  []BehaviourDTO  `json:"elements,omitempty"`
	T         *PredicateDTO   `json:"t,omitempty"`
	F         *PredicateDTO   `json:"f,omitempty"`
	Condition *PredicateDTO   `json:"condition,omitempty"`
	Override  *bool           `json:"override,omitempty"`
}

// EncodeBehaviour converts b into its tagged-variant wire form.
func (c *Configuration) EncodeBehaviour(b Behaviour) (BehaviourDTO, error) {
	switch v := b.(type) {
	case nil:
		return BehaviourDTO{}, nil
	case AllSuccessStatus:
		return BehaviourDTO{Type: `all_success_status`}, nil
	case AnySuccessStatus:
		return BehaviourDTO{Type: `any_success_status`}, nil
	case EvaluateStatus:
		t, err := c.EncodePredicate(v.T)
		if err != nil {
			return BehaviourDTO{}, err
		}
		f, err := c.EncodePredicate(v.F)
		if err != nil {
			return BehaviourDTO{}, err
		}
		return BehaviourDTO{Type: `evaluate_status`, T: &t, F: &f}, nil
	case ModifyStatus:
		inner, err := c.EncodeBehaviour(v.Inner)
		if err != nil {
			return BehaviourDTO{}, err
		}
		return BehaviourDTO{Type: `modify_status`, Inner: &inner, Override: v.Override}, nil
	case Multi:
		elements := make([]BehaviourDTO, 0, len(v.Behaviours))
		for _, inner := range v.Behaviours {
			dto, err := c.EncodeBehaviour(inner)
			if err != nil {
				return BehaviourDTO{}, err
			}
			elements = append(elements, dto)
		}
		return BehaviourDTO{Type: `multi`, Elements: elements}, nil
	case *Repeat:
		inner, err := c.EncodeBehaviour(v.Inner)
		if err != nil {
			return BehaviourDTO{}, err
		}
		var cond *PredicateDTO
		if v.Condition != nil {
			d, err := c.EncodePredicate(v.Condition)
			if err != nil {
				return BehaviourDTO{}, err
			}
			cond = &d
		}
		data, err := json.Marshal(struct {
			Iterations int  `json:"iterations"`
			Retry      bool `json:"retry"`
		}{v.Iterations, v.Retry})
		if err != nil {
			return BehaviourDTO{}, err
		}
		return BehaviourDTO{Type: `repeat`, Inner: &inner, Condition: cond, Data: data}, nil
	case *SequenceBehaviour:
		return BehaviourDTO{Type: `sequence`}, nil
	case *FallbackBehaviour:
		return BehaviourDTO{Type: `fallback`}, nil
	case *MaxUtility:
		return BehaviourDTO{Type: `max_utility`}, nil
	default:
		name, ok := c.behaviourName(b)
		if !ok {
			return BehaviourDTO{}, errUnknownVariant(`behaviour`, typeName(b))
		}
		data, err := json.Marshal(b)
		if err != nil {
			return BehaviourDTO{}, errors.Wrapf(err, `dpt: encode behaviour %q`, name)
		}
		return BehaviourDTO{Type: name, Data: data}, nil
	}
}

// DecodeBehaviour reconstructs a Behaviour from its tagged-variant wire form.
func (c *Configuration) DecodeBehaviour(dto BehaviourDTO) (Behaviour, error) {
	switch dto.Type {
	case ``:
		return nil, nil
	case `all_success_status`:
		return AllSuccessStatus{}, nil
	case `any_success_status`:
		return AnySuccessStatus{}, nil
	case `evaluate_status`:
		t, err := c.decodePredicatePtr(dto.T)
		if err != nil {
			return nil, err
		}
		f, err := c.decodePredicatePtr(dto.F)
		if err != nil {
			return nil, err
		}
		return EvaluateStatus{T: t, F: f}, nil
	case `modify_status`:
		inner, err := c.decodeBehaviourPtr(dto.Inner)
		if err != nil {
			return nil, err
		}
		return ModifyStatus{Inner: inner, Override: dto.Override}, nil
	case `multi`:
		elements := make([]Behaviour, 0, len(dto.Elements))
		for _, e := range dto.Elements {
			inner, err := c.DecodeBehaviour(e)
			if err != nil {
				return nil, err
			}
			elements = append(elements, inner)
		}
		return Multi{Behaviours: elements}, nil
	case `repeat`:
		inner, err := c.decodeBehaviourPtr(dto.Inner)
		if err != nil {
			return nil, err
		}
		cond, err := c.decodePredicatePtr(dto.Condition)
		if err != nil {
			return nil, err
		}
		var payload struct {
			Iterations int  `json:"iterations"`
			Retry      bool `json:"retry"`
		}
		if len(dto.Data) != 0 {
			if err := json.Unmarshal(dto.Data, &payload); err != nil {
				return nil, errors.Wrapf(err, `dpt: decode repeat behaviour`)
			}
		}
		return &Repeat{Inner: inner, Condition: cond, Iterations: payload.Iterations, Retry: payload.Retry}, nil
	case `sequence`:
		return NewSequenceBehaviour(), nil
	case `fallback`:
		return NewFallbackBehaviour(), nil
	case `max_utility`:
		return &MaxUtility{}, nil
	default:
		factory, ok := c.behaviourFactory(dto.Type)
		if !ok {
			return nil, errUnknownVariant(`behaviour`, dto.Type)
		}
		instance := factory()
		if len(dto.Data) != 0 {
			if err := json.Unmarshal(dto.Data, instance); err != nil {
				return nil, errors.Wrapf(err, `dpt: decode behaviour %q`, dto.Type)
			}
		}
		return instance, nil
	}
}

func (c *Configuration) decodePredicatePtr(dto *PredicateDTO) (Predicate, error) {
	if dto == nil {
		return nil, nil
	}
	return c.DecodePredicate(*dto)
}

func (c *Configuration) decodeBehaviourPtr(dto *BehaviourDTO) (Behaviour, error) {
	if dto == nil {
		return nil, nil
	}
	return c.DecodeBehaviour(*dto)
}

// TransitionDTO is the wire representation of a Transition.
type TransitionDTO struct {
	Src       []string     `json:"src"`
	Dst       []string     `json:"dst"`
	Predicate PredicateDTO `json:"predicate"`
}

// PlanDTO is the persisted record layout of §6: name, run_interval,
// autostart, behaviour, transitions, plans, data. run_countdown and span are
// never persisted.
type PlanDTO struct {
	Name        string          `json:"name"`
	RunInterval int             `json:"run_interval"`
	Autostart   bool            `json:"autostart"`
	Behaviour   BehaviourDTO    `json:"behaviour"`
	Transitions []TransitionDTO `json:"transitions,omitempty"`
	Plans       []PlanDTO       `json:"plans,omitempty"`
	Data        map[string]any  `json:"data,omitempty"`
}

// EncodePlan converts a Plan (ordinarily inactive — see the round-trip law of
// spec.md §8) into its persisted record layout. Subplans are emitted in
// sorted order, matching the invariant they're already stored under.
func (c *Configuration) EncodePlan(p *Plan) (PlanDTO, error) {
	behaviour, err := c.EncodeBehaviour(p.behaviour)
	if err != nil {
		return PlanDTO{}, errors.Wrapf(err, `dpt: encode plan %q`, p.name)
	}
	transitions := make([]TransitionDTO, 0, len(p.transitions))
	for _, t := range p.transitions {
		pred, err := c.EncodePredicate(t.Predicate)
		if err != nil {
			return PlanDTO{}, err
		}
		transitions = append(transitions, TransitionDTO{Src: t.Src, Dst: t.Dst, Predicate: pred})
	}
	plans := make([]PlanDTO, 0, len(p.plans))
	for _, child := range p.plans {
		dto, err := c.EncodePlan(child)
		if err != nil {
			return PlanDTO{}, err
		}
		plans = append(plans, dto)
	}
	return PlanDTO{
		Name:        p.name,
		RunInterval: p.runInterval,
		Autostart:   p.autostart,
		Behaviour:   behaviour,
		Transitions: transitions,
		Plans:       plans,
		Data:        p.data,
	}, nil
}

// DecodePlan reconstructs a Plan from its persisted record layout.
// run_countdown is always reestablished as inactive (MaxCountdown), per §6:
// "an in-flight active execution is not a round-trippable object". The
// sorted-subplan invariant is reestablished regardless of input order.
func (c *Configuration) DecodePlan(dto PlanDTO) (*Plan, error) {
	behaviour, err := c.DecodeBehaviour(dto.Behaviour)
	if err != nil {
		return nil, errors.Wrapf(err, `dpt: decode plan %q`, dto.Name)
	}
	p := New(dto.Name, behaviour, dto.RunInterval, dto.Autostart)
	p.tracer = c.Tracer
	p.data = dto.Data

	transitions := make([]Transition, 0, len(dto.Transitions))
	for _, t := range dto.Transitions {
		pred, err := c.DecodePredicate(t.Predicate)
		if err != nil {
			return nil, err
		}
		transitions = append(transitions, NewTransition(t.Src, t.Dst, pred))
	}
	p.transitions = transitions

	plans := make([]*Plan, 0, len(dto.Plans))
	for _, childDTO := range dto.Plans {
		child, err := c.DecodePlan(childDTO)
		if err != nil {
			return nil, err
		}
		plans = append(plans, child)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].name < plans[j].name })
	p.plans = plans
	return p, nil
}

func typeName(v any) string {
	return fmt.Sprintf(`%T`, v)
}
