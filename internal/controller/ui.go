// Package controller provides output adapters for displaying resolved
// project models and tagged source units.
package controller

import (
	"context"

	m "mvnscan/internal/model"
)

// UI defines how listing and resolution results are presented.
// Implementations can use different output methods.
type UI interface {
	DisplayModel(ctx context.Context, model *m.ProjectModel) error
	DisplayUnits(ctx context.Context, units []m.SourceUnit) error
}
