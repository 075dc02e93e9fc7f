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

package rules

import (
	"github.com/securec/csec"
	"github.com/securec/csec/issue"
)

// RuleDefinition contains the description of a rule and a mechanism to
// create it.
type RuleDefinition struct {
	ID          string
	Description string
	Category    issue.Category
	Create      func(id string, c csec.Config) csec.Rule
}

// RuleList is the ordered registry of rule definitions. Insertion order is
// authoritative and decides tie-breaking when several rules fire on the
// same span.
type RuleList []RuleDefinition

// Builders returns the builders for the analyzer, in registry order.
func (rl RuleList) Builders() []csec.RuleBuilder {
	builders := make([]csec.RuleBuilder, 0, len(rl))
	for _, def := range rl {
		def := def
		builders = append(builders, func(c csec.Config) csec.Rule {
			return def.Create(def.ID, c)
		})
	}
	return builders
}

// IDs lists the rule ids in registry order.
func (rl RuleList) IDs() []string {
	ids := make([]string, 0, len(rl))
	for _, def := range rl {
		ids = append(ids, def.ID)
	}
	return ids
}

// RuleFilter can be used to include or exclude a rule depending on the return
// value of the function
type RuleFilter func(RuleDefinition) bool

// NewRuleFilter is a closure that will include/exclude the rule ids based on
// the passed in boolean value
func NewRuleFilter(action bool, ruleIDs ...string) RuleFilter {
	rulelist := make(map[string]bool)
	for _, rule := range ruleIDs {
		rulelist[rule] = true
	}
	return func(rule RuleDefinition) bool {
		if _, found := rulelist[rule.ID]; found {
			return action
		}
		return !action
	}
}

// NewCategoryFilter is a closure that will include/exclude rules of the
// given categories
func NewCategoryFilter(action bool, categories ...issue.Category) RuleFilter {
	catlist := make(map[issue.Category]bool)
	for _, category := range categories {
		catlist[category] = true
	}
	return func(rule RuleDefinition) bool {
		if _, found := catlist[rule.Category]; found {
			return action
		}
		return !action
	}
}

// Generate the ordered list of rules to use
func Generate(filters ...RuleFilter) RuleList {
	rules := RuleList{
		// security
		{"HARDCODED_SECRET", "Literal credentials or keys assigned to an identifier", issue.CatSecurity, NewHardcodedSecret},
		{"UNSAFE_GETS", "Use of unbounded line-reading primitive", issue.CatSecurity, NewUnsafeGets},
		{"UNSAFE_STRCPY", "Use of unbounded string-copy primitive", issue.CatSecurity, NewUnsafeStrcpy},
		{"UNSAFE_STRCAT", "Use of unbounded string-concat primitive", issue.CatSecurity, NewUnsafeStrcat},
		{"UNSAFE_SPRINTF", "Use of unbounded formatted-print into a fixed buffer", issue.CatSecurity, NewUnsafeSprintf},
		{"FORMATTED_QUERY", "Query string built by formatted interpolation of input", issue.CatSecurity, NewFormattedQuery},
		{"COMMAND_EXECUTION", "Invocation of a shell-execution primitive", issue.CatSecurity, NewCommandExecution},

		// quality
		{"UNCHECKED_DIVISION", "Integer division whose divisor is not demonstrably non-zero", issue.CatQuality, NewUncheckedDivision},
		{"POSSIBLE_MEMORY_LEAK", "Heap allocation without a paired release on all exit paths", issue.CatQuality, NewMemoryLeak},
		{"UNINITIALIZED_READ", "Variable read before any assignment in the same scope", issue.CatQuality, NewUninitializedRead},
		{"DEBUG_PRINT", "Freeform debug output left in source", issue.CatQuality, NewDebugPrint},
		{"TODO_COMMENT", "Comment containing a TODO/FIXME marker", issue.CatQuality, NewTodoComment},
		{"TEST_LEFTOVER_COMMENT", "Comment marked as temporary/test scaffold", issue.CatQuality, NewTestLeftoverComment},

		// supplemental
		{"SECRET_EXPOSURE", "Secret-named identifier passed to an output primitive", issue.CatSecurity, NewSecretExposure},
	}

	filtered := make(RuleList, 0, len(rules))
	for _, rule := range rules {
		excluded := false
		for _, filter := range filters {
			if filter(rule) {
				excluded = true
				break
			}
		}
		if !excluded {
			filtered = append(filtered, rule)
		}
	}
	return filtered
}
