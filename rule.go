// (c) Copyright 2016 Hewlett Packard Enterprise Development LP
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package csec

import (
	"github.com/securec/csec/issue"
)

// The Rule interface used by all rules supported by csec. A rule walks the
// prepared context and reports every match it finds. Rules hold only
// compiled patterns and metadata, so one rule value is safe for concurrent
// use across analyzers.
type Rule interface {
	ID() string
	Match(ctx *Context) ([]*issue.Issue, error)
}

// RuleBuilder is used to register a rule with the analyzer. The analyzer
// passes its configuration through so rules can pick up their tuning
// sections.
type RuleBuilder func(c Config) Rule

// A RuleSet is an ordered collection of rules. Registration order is
// authoritative: it decides emission order when several rules fire on the
// same span.
type RuleSet []Rule

// Register adds a rule to the set, preserving insertion order.
func (r RuleSet) Register(rule Rule) RuleSet {
	return append(r, rule)
}

// IDs lists the registered rule ids in order.
func (r RuleSet) IDs() []string {
	ids := make([]string, 0, len(r))
	for _, rule := range r {
		ids = append(ids, rule.ID())
	}
	return ids
}
