// Package harness runs conformance scenarios against the renaming pipeline.
//
// A scenario names a function table, a pipeline and the outcome expected
// for each function. The harness runs the pipeline with a fixed run id and
// a resettable logical clock, persists the report to an in-memory rename
// log, reads the decisions back and checks them.
//
// # Scenario Format
//
//	name: hello
//	description: "hello.c demo program"
//	module: ../modules/hello.cue      # or inline:
//	# module_name: inline
//	# functions:
//	#   - {name: getHello, definition: true}
//	pipeline: "function(md5-function-name-pass)"
//	reserved: [printf, sprintf, vsprintf] # optional
//	entry_point: main                      # optional
//	expect:
//	  getHello: renamed
//	  main: entry point
//	assertions:
//	  - type: final_names
//	    names: [9d55bba9469f8ffcfe1202d85490c913, ...]
//
// Module paths are relative to the scenario file.
//
// # Assertion Types
//
//   - renamed: Function was renamed (optionally to Digest)
//   - skipped: Function was skipped for Reason
//   - final_names: the table's names after the run, in order
//   - diagnostic: the diagnostic trace contains Line exactly
//   - decision_count: the run made exactly Count decisions
//
// # Golden Files
//
// The diagnostic trace (the classic "Skipping ..." and "MD5 Hash: ..."
// lines) is compared against golden files with goldie. Run the harness
// tests with -update to regenerate them.
package harness
