package inject

import (
	"github.com/golang/geo/r3"

	"go.viam.com/lighthouse/lighthouse"
	"go.viam.com/lighthouse/spatialmath"
)

// PoseSource is an injected pose source.
type PoseSource struct {
	lighthouse.PoseSource
	EstimatedPositionFunc func() r3.Vector
	EstimatedRotationFunc func() spatialmath.RotationMatrix
}

// EstimatedPosition calls the injected EstimatedPosition or the real version.
func (p *PoseSource) EstimatedPosition() r3.Vector {
	if p.EstimatedPositionFunc == nil {
		return p.PoseSource.EstimatedPosition()
	}
	return p.EstimatedPositionFunc()
}

// EstimatedRotation calls the injected EstimatedRotation or the real version.
func (p *PoseSource) EstimatedRotation() spatialmath.RotationMatrix {
	if p.EstimatedRotationFunc == nil {
		return p.PoseSource.EstimatedRotation()
	}
	return p.EstimatedRotationFunc()
}
