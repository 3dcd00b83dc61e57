package client

import (
	"context"
	"fmt"
	"io"
	"os"
)

// FileFetcher reads a sphere payload from a local file.
// A Path of "-" reads from Stdin.
type FileFetcher struct {
	Path  string
	Stdin io.Reader
}

// Fetch reads the whole file. Failures wrap ErrFetchFailed.
func (f FileFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	if f.Path == "-" {
		in := f.Stdin
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("%w: read stdin: %w", ErrFetchFailed, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrFetchFailed, f.Path, err)
	}
	return data, nil
}
