package dashboard

import "errors"

// Sentinel kinds for dashboard errors. Every kind is handled at the action
// that raised it and rendered into its view.
var (
	ErrValidation   = errors.New("invalid form input")
	ErrRequest      = errors.New("prediction request rejected")
	ErrConnectivity = errors.New("prediction server unreachable")
	ErrChartRender  = errors.New("chart render failed")
	ErrUnknownModel = errors.New("unknown model type")
	ErrChartType    = errors.New("unsupported chart type")
)
