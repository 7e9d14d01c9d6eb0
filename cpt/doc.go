// Package cpt compiles a variable's sparse elicitation into a dense
// conditional probability table over the power set of its causes.
//
// What:
//
//   - Build(elicited, k) returns cpt[0 .. 2^k) where cpt[i] = P(X | causes in i).
//   - Explicit elicitations always win; missing entries are derived:
//   - Noisy-OR for combinations of fewer than three active causes,
//     1 − Π (1 − cpt[singleton]).
//   - Recursive Noisy-OR (RNOR) for three or more, a closed-form ratio of
//     already-computed lower-order entries, O(k) per index.
//   - A non-zero leak cpt[0] is finally folded into every combination:
//     cpt[i] = 1 − (1 − cpt[i])(1 − cpt[0]).
//
// Indices are resolved in increasing numeric order, so every sub-combination
// a formula reads is already final when it is read.
//
// Complexity:
//
//   - Time:   O(2^k · k)
//   - Memory: O(2^k)
//
// Errors:
//
//   - ErrNegativeCauseCount  k < 0
//   - ErrTooManyCauses       k > MaxCauses
package cpt
