/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package quality

import "fmt"

// Configuration errors are raised before any row is scanned, so a caller
// never receives partial or inconsistent metrics.

// ErrUnknownColumn reports a named column that does not exist on the table.
type ErrUnknownColumn struct {
	Column string
}

func (e *ErrUnknownColumn) Error() string {
	return fmt.Sprintf("unknown column: %s", e.Column)
}

// ErrInvalidRange reports a validity range whose bounds are reversed.
type ErrInvalidRange struct {
	Lo float64
	Hi float64
}

func (e *ErrInvalidRange) Error() string {
	return fmt.Sprintf("invalid range: lo %g exceeds hi %g", e.Lo, e.Hi)
}

// ErrBadCorrection reports a malformed or conflicting entry in a cleanser
// correction table.
type ErrBadCorrection struct {
	Find   string
	Reason string
}

func (e *ErrBadCorrection) Error() string {
	return fmt.Sprintf("bad correction %q: %s", e.Find, e.Reason)
}
