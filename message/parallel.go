package message

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/mmp/marskit/internal"
)

// ParseGRIB2Messages parses multiple GRIB2 messages from a byte slice in
// parallel: a sequential scan finds message boundaries, then a worker
// pool decodes each message concurrently. Results preserve original
// message order.
func ParseGRIB2Messages(data []byte) ([]*GRIB2Message, error) {
	return ParseGRIB2MessagesWithContext(context.Background(), data, runtime.NumCPU())
}

// ParseGRIB2MessagesWithWorkers parses messages with a specific number of
// workers. If workers <= 0, defaults to runtime.NumCPU().
func ParseGRIB2MessagesWithWorkers(data []byte, workers int) ([]*GRIB2Message, error) {
	return ParseGRIB2MessagesWithContext(context.Background(), data, workers)
}

// ParseGRIB2MessagesWithContext parses messages with context support for
// cancellation.
func ParseGRIB2MessagesWithContext(ctx context.Context, data []byte, workers int) ([]*GRIB2Message, error) {
	boundaries, err := FindMessages(data)
	if err != nil {
		return nil, fmt.Errorf("failed to find message boundaries: %w", err)
	}
	if len(boundaries) == 0 {
		return []*GRIB2Message{}, nil
	}
	if len(boundaries) == 1 {
		msg, err := ParseGRIB2Message(data[boundaries[0].Start : boundaries[0].Start+boundaries[0].Length])
		if err != nil {
			return nil, err
		}
		return []*GRIB2Message{msg}, nil
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	messages := make([]*GRIB2Message, len(boundaries))
	var mu sync.Mutex

	pool := internal.NewWorkerPool(ctx, workers)

	for i := range boundaries {
		idx := i
		boundary := boundaries[idx]

		err := pool.Submit(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			msgData := data[boundary.Start : boundary.Start+boundary.Length]
			msg, err := ParseGRIB2Message(msgData)
			if err != nil {
				return fmt.Errorf("failed to parse message %d at offset %d: %w", boundary.Index, boundary.Start, err)
			}
			mu.Lock()
			messages[idx] = msg
			mu.Unlock()
			return nil
		})
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to submit task: %w", err)
		}
	}

	if err := pool.Wait(); err != nil {
		return nil, err
	}

	return messages, nil
}

// ParseGRIB2MessagesSequential parses messages one at a time, useful for
// deterministic single-threaded behavior or benchmarking against the
// parallel path.
func ParseGRIB2MessagesSequential(data []byte) ([]*GRIB2Message, error) {
	boundaries, err := FindMessages(data)
	if err != nil {
		return nil, fmt.Errorf("failed to find message boundaries: %w", err)
	}
	messages := make([]*GRIB2Message, len(boundaries))
	for i, boundary := range boundaries {
		msgData := data[boundary.Start : boundary.Start+boundary.Length]
		msg, err := ParseGRIB2Message(msgData)
		if err != nil {
			return nil, fmt.Errorf("failed to parse message %d at offset %d: %w", boundary.Index, boundary.Start, err)
		}
		messages[i] = msg
	}
	return messages, nil
}

// ParseGRIB2MessagesSequentialSkipErrors parses messages sequentially,
// silently skipping any message that fails to decode (e.g. an
// unsupported template).
func ParseGRIB2MessagesSequentialSkipErrors(data []byte) ([]*GRIB2Message, error) {
	boundaries, err := FindMessages(data)
	if err != nil {
		return nil, fmt.Errorf("failed to find message boundaries: %w", err)
	}
	messages := make([]*GRIB2Message, 0, len(boundaries))
	for _, boundary := range boundaries {
		msgData := data[boundary.Start : boundary.Start+boundary.Length]
		msg, err := ParseGRIB2Message(msgData)
		if err != nil {
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
