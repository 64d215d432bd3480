package blob

import (
	"context"
	"io"
)

// Store is the external blob collaborator: it takes file bytes and returns a
// durable URL. The engine never inspects the bytes behind that URL.
type Store interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}
