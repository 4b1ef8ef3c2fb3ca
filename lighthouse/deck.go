package lighthouse

import "github.com/golang/geo/r3"

// Sensor positions on the deck, in the deck's own frame (meters).
const (
	sensorPosW = 0.015 / 2.0
	sensorPosL = 0.030 / 2.0
)

// SensorDeckPositions are the fixed offsets of the four sensors relative to the body origin.
// All sensors lie in the deck plane (z = 0). Sensors 0 and 3, and 1 and 2, sit on opposite
// corners.
var SensorDeckPositions = [NumSensors]r3.Vector{
	{X: -sensorPosL, Y: sensorPosW, Z: 0},
	{X: -sensorPosL, Y: -sensorPosW, Z: 0},
	{X: sensorPosL, Y: sensorPosW, Z: 0},
	{X: sensorPosL, Y: -sensorPosW, Z: 0},
}
