// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for testability.
//
// Code that stamps reports or builds time-based identifiers accepts a
// Clock instead of calling time.Now directly. In production, Real()
// provides the standard library behavior. In tests, Fake() provides a
// deterministic clock that moves only when told to.
//
// # Wiring Pattern
//
// Add a Clock field to structs that use time:
//
//	type Runner struct {
//	    Clock clock.Clock
//	    // ...
//	}
//
// In production:
//
//	runner := &harness.Runner{Clock: clock.Real()}
//
// In tests:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	fake.Step(time.Second) // every Now call moves the clock forward
//	runner := &harness.Runner{Clock: fake}
package clock
