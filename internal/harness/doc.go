// Package harness runs conversion scenarios as executable contract tests.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: boundaries
//	description: "Smallest and largest representable values"
//	strict: false
//	cases:
//	  - integer: 1
//	    expect: I
//	  - roman: " cv\n"
//	    expect: 105
//	  - integer: 4000
//	    error: ValueTooLarge
//
// The same shape may be written in CUE (.cue files). CUE scenarios are
// checked against an embedded #Scenario schema before decoding.
//
// Each case names exactly one input (integer or roman) and exactly one
// expectation (expect or error). Valid error names are ValueTooSmall,
// ValueTooLarge, EmptyString, Unparsable and InvalidInput (integer input
// that is not an unsigned number).
//
// # Deterministic Traces
//
// Run records every case in a fresh in-memory history store with fixed IDs
// and timestamps, then reads the trace back in seq order. Identical scenarios
// therefore produce byte-identical snapshots, suitable for golden files.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/boundaries.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(ctx, scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
