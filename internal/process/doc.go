// Package process terminates browser process trees left behind by the
// SVG background rasterizer.
package process
