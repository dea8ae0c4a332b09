package ports

import "github.com/Zhyangithub/eataway-router/internal/tabular"

// TableSource provides the two input tables of a pipeline run. Both
// are read once per run; parse errors surface here, not downstream.
type TableSource interface {
	Coordinates() (tabular.Grid, error)
	Routes() (tabular.Grid, error)
}
