// Package sampler builds a deduplicated command corpus from a random command
// generator whose output space is unknown.
//
// # Saturation
//
// The generator is a black-box random sampler, not an enumerator, so the
// only generic stopping signal is diminishing returns. The Sampler draws
// commands until MaxConsecutiveDuplicates draws in a row were already in the
// corpus. A generator that cycles through N distinct strings therefore
// saturates after exactly N + MaxConsecutiveDuplicates attempts.
//
// Stopping while rare strings are still reachable is an accepted trade-off:
// saturation approximates exhaustion, it does not prove it.
//
// # State
//
// A Sampler is single-threaded and owns its corpus and Session outright.
// There is no cancellation beyond the saturation threshold.
package sampler
