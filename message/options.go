package message

import (
	"context"
	"runtime"
)

// ReadOption configures the behavior of Read operations.
type ReadOption func(*readConfig)

type readConfig struct {
	workers    int
	sequential bool
	skipErrors bool
	ctx        context.Context
	filter     func(*GRIB2Message) bool
}

func defaultReadConfig() readConfig {
	return readConfig{
		workers:    runtime.NumCPU(),
		sequential: false,
		skipErrors: false,
		filter:     func(*GRIB2Message) bool { return true },
	}
}

// WithWorkers sets the number of concurrent workers for parallel parsing.
// If workers <= 0, defaults to runtime.NumCPU().
func WithWorkers(workers int) ReadOption {
	return func(c *readConfig) { c.workers = workers }
}

// WithSequential disables parallel processing.
func WithSequential() ReadOption {
	return func(c *readConfig) { c.sequential = true }
}

// WithContext sets a context for cancellation and timeout support.
func WithContext(ctx context.Context) ReadOption {
	return func(c *readConfig) { c.ctx = ctx }
}

// WithSkipErrors continues parsing even if some messages fail.
func WithSkipErrors() ReadOption {
	return func(c *readConfig) { c.skipErrors = true }
}

// WithFilter applies a custom filter to select which messages to decode.
func WithFilter(filter func(*GRIB2Message) bool) ReadOption {
	return func(c *readConfig) { c.filter = filter }
}

// WithParameterCategory filters messages by parameter category.
func WithParameterCategory(category uint8) ReadOption {
	return WithFilter(func(msg *GRIB2Message) bool {
		if msg.Section4 == nil || msg.Section4.Product == nil {
			return false
		}
		return msg.Section4.Product.GetParameterCategory() == category
	})
}

// WithParameterNumber filters messages by parameter number within a category.
func WithParameterNumber(number uint8) ReadOption {
	return WithFilter(func(msg *GRIB2Message) bool {
		if msg.Section4 == nil || msg.Section4.Product == nil {
			return false
		}
		return msg.Section4.Product.GetParameterNumber() == number
	})
}

// WithDiscipline filters messages by discipline.
func WithDiscipline(discipline uint8) ReadOption {
	return WithFilter(func(msg *GRIB2Message) bool {
		if msg.Section0 == nil {
			return false
		}
		return msg.Section0.Discipline == discipline
	})
}

// WithCenter filters messages by originating center.
func WithCenter(center uint16) ReadOption {
	return WithFilter(func(msg *GRIB2Message) bool {
		if msg.Section1 == nil {
			return false
		}
		return msg.Section1.OriginatingCenter == center
	})
}
