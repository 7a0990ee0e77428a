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
	"github.com/cockroachdb/errors"
)

// errDuplicateVariant is returned by Configuration.RegisterBehaviour /
// RegisterPredicate when the same discriminator is registered twice.
func errDuplicateVariant(kind, name string) error {
	return errors.Newf(`dpt: duplicate %s variant %q`, kind, name)
}

// errUnknownVariant is returned during deserialization when a discriminator has
// no matching registration.
func errUnknownVariant(kind, name string) error {
	return errors.Newf(`dpt: unknown %s variant %q`, kind, name)
}

// wrapTickPanic recovers a panic from a behaviour callback run under the
// parallel recursion mode (§5/§7: "a panic in a behaviour callback under
// parallel mode is surfaced back at join time as a propagation failure of the
// root run()"), converting it into an error so it can be combined with sibling
// failures via errors.CombineErrors instead of crashing the whole process.
func wrapTickPanic(name string, r any) error {
	if err, ok := r.(error); ok {
		return errors.Wrapf(err, `dpt: panic in plan %q`, name)
	}
	return errors.Newf(`dpt: panic in plan %q: %v`, name, r)
}
