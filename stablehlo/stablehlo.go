// Package stablehlo helps build a StableHLO program (text format) to then be
// JIT-compiled and executed by a PJRT plugin.
//
// Among its features:
//
// - Translates an API to rendered (human-readable) StableHLO text.
// - Shape inference: it calculates the output shapes for operations.
// - A reference evaluator (see Function.Evaluate) for the data movement and element-wise ops, used for testing.
// - Written purely in Go, no C/C++ external dependencies.
//
// Operations that have no StableHLO counterpart (Unsqueeze, Proposal) are rendered as
// "stablehlo.custom_call" with a call_target_name.
//
// See StableHLO documentation and specifications in https://openxla.org/stablehlo/spec
package stablehlo
