// Package pipeline is the host that drives function passes over a module.
//
// A pipeline is described by a short text in the style of a compiler's
// pass-manager syntax:
//
//	function(md5-function-name-pass)
//	module(function(md5-function-name-pass))
//	md5-function-name-pass
//
// "module" and "function" are adaptors that nest a sub-pipeline; any other
// identifier names a registered function pass. A bare pass name at the top
// level is an implicit function pass.
//
// The host owns traversal: it calls each pass exactly once per function, in
// table order, serially. Functions marked optnone are skipped for passes
// that do not report Required. Every decision is stamped with a logical
// sequence number so a run's report is reproducible.
package pipeline
