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
	"regexp"

	"github.com/securec/csec"
	"github.com/securec/csec/issue"
)

type todoComment struct {
	commentScanRule
}

// NewTodoComment detects comments containing a TODO/FIXME style marker.
func NewTodoComment(id string, _ csec.Config) csec.Rule {
	return &todoComment{
		commentScanRule: commentScanRule{
			MetaData: issue.NewMetaData(id,
				"Comment contains a TODO/FIXME marker",
				issue.CatQuality, issue.Low, issue.High),
			pattern: regexp.MustCompile(`(?i)\b(todo|fixme|xxx|hack)\b`),
		},
	}
}

type testLeftoverComment struct {
	commentScanRule
}

// NewTestLeftoverComment detects comments marked as temporary or test
// scaffold.
func NewTestLeftoverComment(id string, _ csec.Config) csec.Rule {
	return &testLeftoverComment{
		commentScanRule: commentScanRule{
			MetaData: issue.NewMetaData(id,
				"Comment marks temporary or test scaffold",
				issue.CatQuality, issue.Low, issue.Medium),
			pattern: regexp.MustCompile(`(?i)\b(test|hello)\b`),
		},
	}
}
