// Package embedding holds the embedder implementations shared by the index
// builder and the vector retriever. The serving path only ever loads a model
// from the local cache file; fitting and remote encoding are build-time
// operations.
package embedding

import "errors"

// ErrModelUnavailable reports that the embedding model could not be loaded
// from its local cache. Callers switch to the keyword path on this error.
var ErrModelUnavailable = errors.New("embedding: model unavailable")
