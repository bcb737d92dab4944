// Package engine runs one pipeline stage: open the input table under the
// stage's header contract, transform every row, and write the result.
//
// It never imports app, cli, or the concrete stages; stages plug in through
// the Stage interface and collaborators stay behind internal/lookup.
package engine
