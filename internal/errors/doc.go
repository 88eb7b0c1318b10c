// Package errors provides coded, categorized errors for vtree.
//
// Every error raised by the tree engine, the wire protocol, the
// configuration loader and the CLI carries a short code (e.g. "V001") that
// maps to a registered template with a message and a longer explanation.
//
// # Categories
//
//   - tree: structural and property errors raised by pkg/vdom
//   - event: event dispatch preconditions
//   - protocol: wire frames that cannot be decoded or applied
//   - config: vtree.json problems
//   - cli: command-line usage problems
//
// # Matching
//
// Errors match by code, so a freshly built error satisfies errors.Is
// against a sentinel built from the same code:
//
//	var ErrNotFound = errors.New(errors.CodeNotFound)
//
//	err := errors.New(errors.CodeNotFound).WithDetail("span#7 is not a child of div#3")
//	stderrors.Is(err, ErrNotFound) // true
//
// # Formatting
//
// Format renders an error for terminals:
//
//	ERROR V001: Node not found
//
//	  span#7 is not a child of div#3
//
//	  Hint: look the node up again after structural edits
package errors
