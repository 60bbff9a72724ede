// Package fieldsafe provides hybrid, ReDoS-resistant validation of
// untrusted string fields against declarative patterns.
//
// The engine pairs a time-bounded backtracking matcher (the fast,
// expressive primary path) with deterministic NFA simulation (the safe
// fallback path). Adversarial input can drive a backtracking matcher
// into exponential territory; here it can only drive a field onto an
// O(n) automaton that recognizes the same field shape.
//
// # Quick Start
//
//	import (
//	    fv "github.com/fieldsafe/validator"
//	    "github.com/fieldsafe/validator/engine"
//	)
//
//	schema := fv.NewSchema(
//	    fv.MapField(fv.Descriptor{FieldName: "Email", RawPattern: `\S+@\S+\.\S+`, Kind: fv.KindEmailShape}),
//	    fv.MapField(fv.Descriptor{FieldName: "Phone", RawPattern: `\+?[0-9][0-9 \-]*`, Kind: fv.KindPhoneShape}),
//	)
//
//	v := engine.New()
//	result := v.ValidateAll(ctx, schema, record)
//	if !result.Valid {
//	    for _, msg := range result.Messages() {
//	        fmt.Println(msg)
//	    }
//	}
//	result.Release() // Return to pool for better performance
//
// # How a field is evaluated
//
//   - Guardrail: structurally pathological patterns combined with long
//     input skip the primary matcher outright.
//   - Admission: a fixed permit pool caps concurrent primary matches;
//     acquisition never blocks, excess load is shed to the fallback.
//   - Primary: a compiled, cached matcher with a hard wall-clock budget.
//   - Fallback: NFA simulation for recognized shapes (email, phone),
//     linear in the input, immune to catastrophic backtracking.
//
// Every fallback emits a structured diagnostic event (field, pattern,
// input length, reason). A spike of fallback events with large input
// lengths is the operational signal that someone is probing for ReDoS.
//
// # Functional Options
//
//	v := engine.New(
//	    fv.WithMatchTimeout(100*time.Millisecond),
//	    fv.WithMaxConcurrent(8),
//	    fv.WithFallback(true),
//	)
package fieldsafe
