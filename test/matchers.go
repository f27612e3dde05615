/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package test

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/mock/gomock"
)

// Contains returns a gomock.Matcher that matches strings containing the given needle.
func Contains(needle string) gomock.Matcher {
	return &containsMatcher{needle: needle}
}

type containsMatcher struct {
	needle string
}

func (c containsMatcher) Matches(x interface{}) bool {
	return strings.Contains(fmt.Sprintf("%s", x), c.needle)
}

func (c containsMatcher) String() string {
	return "contains string: " + c.needle
}

// JSONEq returns a gomock.Matcher that matches values whose JSON representation equals the given JSON document.
func JSONEq(expected string) gomock.Matcher {
	return &jsonMatcher{expected: expected}
}

type jsonMatcher struct {
	expected string
}

func (j jsonMatcher) Matches(x interface{}) bool {
	var actualBytes []byte
	switch v := x.(type) {
	case []byte:
		actualBytes = v
	case string:
		actualBytes = []byte(v)
	default:
		var err error
		if actualBytes, err = json.Marshal(x); err != nil {
			return false
		}
	}
	var expected, actual interface{}
	if json.Unmarshal([]byte(j.expected), &expected) != nil || json.Unmarshal(actualBytes, &actual) != nil {
		return false
	}
	expectedNorm, _ := json.Marshal(expected)
	actualNorm, _ := json.Marshal(actual)
	return string(expectedNorm) == string(actualNorm)
}

func (j jsonMatcher) String() string {
	return "JSON equal to: " + j.expected
}
