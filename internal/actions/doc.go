// Package actions executes queued pull-request actions against the github
// API.
//
// One handler exists per family of action kinds, the Registry resolves the
// handler for a kind and is plugged into the worker pool as its dispatcher.
//
// Handlers signal two kinds of failures: a ValidationError when a required
// action parameter is missing or malformed and a PreconditionError when the
// github state does not allow the operation yet. Both are returned to the
// worker which applies the generic retry contract. Failures of single items
// inside batch operations are recorded in the action result, the action
// still completes.
package actions
