// Package pass defines the contract between function passes and the host
// pipeline that drives them.
//
// A FunctionPass decides, for one ir.Function at a time, whether to act and
// returns a Result describing what it did. Passes hold no state between
// calls and never touch any record other than the one they are given.
//
// # Registration
//
// Passes are exposed to pipelines under a fixed identifier string. A
// Registry maps identifiers to factories; plugins bundle one or more
// registrations and announce themselves through the Recorder when loaded:
//
//	reg := pass.NewRegistry()
//	if err := reg.Load(md5name.Plugin(md5name.DefaultConfig()), rec); err != nil {
//	    return err
//	}
//	p, err := reg.New("md5-function-name-pass", rec)
//
// # Diagnostics
//
// Passes never write to process-wide output. Every decision is reported as
// an Event to an injected Recorder, so decision logic stays testable without
// capturing stderr. TextRecorder reproduces the classic one-line-per-decision
// diagnostic stream; SlogRecorder emits structured records; Collector keeps
// events in memory for tests and the rename log.
package pass
