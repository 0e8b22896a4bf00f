package ports

import "github.com/RomanDataLab/Brazil-flightradar/pkg/log"

// Logger aliases the pkg/log contract so the application layer, adapters and
// the public facade all share one logger type without an import cycle.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field

// Field constructors, re-exported for the application layer.
var (
	String   = log.String
	Int      = log.Int
	Int64    = log.Int64
	Float64  = log.Float64
	Bool     = log.Bool
	Duration = log.Duration
	Err      = log.Err
	Any      = log.Any
)
