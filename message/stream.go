package message

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/mmp/marskit/internal"
)

// ParseGRIB2MessagesFromStreamSequential reads and decodes every GRIB2
// message from r, one at a time.
func ParseGRIB2MessagesFromStreamSequential(r io.Reader) ([]*GRIB2Message, error) {
	s := NewSplitter(r)
	var out []*GRIB2Message
	for {
		raw, err := s.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		msg, err := ParseGRIB2Message(raw.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse message at offset %d: %w", raw.Start, err)
		}
		out = append(out, msg)
	}
}

// ParseGRIB2MessagesFromStreamSequentialSkipErrors is like
// ParseGRIB2MessagesFromStreamSequential but silently skips messages that
// fail to decode.
func ParseGRIB2MessagesFromStreamSequentialSkipErrors(r io.Reader) ([]*GRIB2Message, error) {
	s := NewSplitter(r)
	var out []*GRIB2Message
	for {
		raw, err := s.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		msg, err := ParseGRIB2Message(raw.Data)
		if err != nil {
			continue
		}
		out = append(out, msg)
	}
}

// ParseGRIB2MessagesFromStreamWithContext reads every message from r into
// memory (framing only) then decodes them concurrently using workers
// goroutines, honoring ctx for cancellation.
func ParseGRIB2MessagesFromStreamWithContext(ctx context.Context, r io.Reader, workers int) ([]*GRIB2Message, error) {
	s := NewSplitter(r)
	var raws []*RawMessage
	for {
		raw, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	if len(raws) == 0 {
		return []*GRIB2Message{}, nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	messages := make([]*GRIB2Message, len(raws))
	var mu sync.Mutex
	pool := internal.NewWorkerPool(ctx, workers)
	for i := range raws {
		idx := i
		raw := raws[idx]
		if err := pool.Submit(func() error {
			msg, err := ParseGRIB2Message(raw.Data)
			if err != nil {
				return fmt.Errorf("failed to parse message %d at offset %d: %w", idx, raw.Start, err)
			}
			mu.Lock()
			messages[idx] = msg
			mu.Unlock()
			return nil
		}); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if err := pool.Wait(); err != nil {
		return nil, err
	}
	return messages, nil
}

// ParseGRIB2MessagesFromStreamWithWorkers is
// ParseGRIB2MessagesFromStreamWithContext with context.Background().
func ParseGRIB2MessagesFromStreamWithWorkers(r io.Reader, workers int) ([]*GRIB2Message, error) {
	return ParseGRIB2MessagesFromStreamWithContext(context.Background(), r, workers)
}
