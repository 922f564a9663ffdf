// Package source fetches the graph description of a trial.
//
// A [Source] resolves a trial id to DOT text. [HTTPSource] performs an HTTP GET
// of [Location] relative to a base URL; [DirSource] reads the same path from a
// local directory. Both report failures as *errors.FetchError so that hosts
// can show the status code and the server's message. Neither retries.
package source

import (
	"context"
	"net/url"
	"path"
)

// Source fetches the graph description of a trial.
type Source interface {
	Fetch(ctx context.Context, trialID string) (string, error)
}

// Func adapts a function to the [Source] interface.
type Func func(ctx context.Context, trialID string) (string, error)

// Fetch calls f(ctx, trialID).
func (f Func) Fetch(ctx context.Context, trialID string) (string, error) {
	return f(ctx, trialID)
}

// FileName is the name of a trial's graph description.
const FileName = "prospective.dot"

// Location returns the relative fetch location of a trial's graph
// description: trials/<trialID>/prospective.dot, with the id escaped as a
// single path segment.
func Location(trialID string) string {
	return path.Join("trials", url.PathEscape(trialID), FileName)
}
