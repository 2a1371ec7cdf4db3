package renderer

import "errors"

var (
	ErrNoTracers        = errors.New("renderer: no tracers attached")
	ErrSceneNotDefined  = errors.New("renderer: no scene defined")
	ErrCameraNotDefined = errors.New("renderer: no camera defined")
	ErrCameraMismatch   = errors.New("renderer: camera image size does not match the frame size")
	ErrInvalidOptions   = errors.New("renderer: invalid render options")
	ErrUnknownPreset    = errors.New("renderer: unknown preset")
	ErrInterrupted      = errors.New("renderer: interrupted while rendering")
)
