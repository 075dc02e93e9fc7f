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

type unsafeGets struct {
	callSiteRule
}

// NewUnsafeGets detects use of the unbounded line-reading primitive.
func NewUnsafeGets(id string, _ csec.Config) csec.Rule {
	return &unsafeGets{
		callSiteRule: newCallSiteRule(
			issue.NewMetaData(id,
				"Use of gets, input length is unbounded and can overflow the destination buffer",
				issue.CatSecurity, issue.High, issue.High),
			"gets"),
	}
}

type unsafeStrcpy struct {
	callSiteRule
}

// NewUnsafeStrcpy detects use of the unbounded string-copy primitive.
func NewUnsafeStrcpy(id string, _ csec.Config) csec.Rule {
	return &unsafeStrcpy{
		callSiteRule: newCallSiteRule(
			issue.NewMetaData(id,
				"Use of strcpy, copy length is unbounded and can overflow the destination buffer",
				issue.CatSecurity, issue.High, issue.High),
			"strcpy"),
	}
}

type unsafeStrcat struct {
	callSiteRule
}

// NewUnsafeStrcat detects use of the unbounded string-concat primitive.
func NewUnsafeStrcat(id string, _ csec.Config) csec.Rule {
	return &unsafeStrcat{
		callSiteRule: newCallSiteRule(
			issue.NewMetaData(id,
				"Use of strcat, concatenation is unbounded and can overflow the destination buffer",
				issue.CatSecurity, issue.High, issue.High),
			"strcat"),
	}
}

type unsafeSprintf struct {
	callSiteRule
}

// NewUnsafeSprintf detects unbounded formatted printing into a fixed buffer.
func NewUnsafeSprintf(id string, _ csec.Config) csec.Rule {
	return &unsafeSprintf{
		callSiteRule: newCallSiteRule(
			issue.NewMetaData(id,
				"Use of sprintf, formatted output is unbounded and can overflow the destination buffer",
				issue.CatSecurity, issue.High, issue.High),
			"sprintf", "vsprintf"),
	}
}
