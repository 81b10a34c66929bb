/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package model

import (
	"regexp"
	"strings"
)

// Well-known logical field names of a customer master-data record.
const (
	FieldCustomerName = "customer_name"
	FieldAddress      = "address"
	FieldCity         = "city"
	FieldCountry      = "country"
	FieldTPI          = "tpi"
)

// CustomerRecord is a loosely-typed customer master-data record as it
// arrives from upstream candidate generation. Any field may be absent;
// consumers must treat absence as a distinct state, not an error.
type CustomerRecord map[string]interface{}

// GetField returns the string value of a field and whether it is present
// and non-empty.
func (r CustomerRecord) GetField(name string) (string, bool) {

	raw, ok := r[name]
	if !ok || raw == nil {
		return "", false
	}
	value, ok := raw.(string)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

// HasField reports whether a field is present with a non-empty value.
func (r CustomerRecord) HasField(name string) bool {

	_, ok := r.GetField(name)
	return ok
}

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s]`)
	multiSpace      = regexp.MustCompile(`\s+`)
)

// Normalize lowercases a value, strips punctuation and collapses runs of
// whitespace, so "ACME Corp." and "acme corp" compare equal the way the
// upstream fuzzy pipeline treats them.
func Normalize(value string) string {

	value = strings.ToLower(strings.TrimSpace(value))
	value = nonAlphanumeric.ReplaceAllString(value, " ")
	value = multiSpace.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

// NormalizedField returns the normalized value of a field and whether it
// is present.
func (r CustomerRecord) NormalizedField(name string) (string, bool) {

	value, ok := r.GetField(name)
	if !ok {
		return "", false
	}
	return Normalize(value), true
}
