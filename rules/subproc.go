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

type subprocess struct {
	callSiteRule
}

// NewCommandExecution detects invocations of shell-execution primitives.
// Whether the executed command is attacker controlled cannot be decided
// file-locally, so every call site is reported for audit.
func NewCommandExecution(id string, _ csec.Config) csec.Rule {
	return &subprocess{
		callSiteRule: newCallSiteRule(
			issue.NewMetaData(id,
				"Shell execution primitive, command content should be audited",
				issue.CatSecurity, issue.High, issue.High),
			"system", "popen", "execl", "execlp", "execle", "execv", "execvp", "execve", "ShellExecute"),
	}
}
