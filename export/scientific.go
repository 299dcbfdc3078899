package export

import (
	"errors"

	"github.com/pivolan/argo_explorer/domain/models"
)

var ErrScientificArrayUnsupported = errors.New("scientific array export is not supported")

// ScientificArray is the NetCDF-style export slot. No byte layout is
// produced yet.
func ScientificArray(ds *models.Dataset, records []models.Record) (Artifact, error) {
	return Artifact{}, ErrScientificArrayUnsupported
}
