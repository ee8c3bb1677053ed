// Package filter implements the per-frame pixel stages of the booth:
//   - Color transforms: posterize with saturation boost, rainbow hue
//     cycling, channel shift
//   - Neighborhood filters: bilateral smoothing, Sobel edges, pixelation
//   - Composable stages: cartoon, neon glow, glitch, sparkles, texture
//     noise and the anime indicator
//
// Every stage preserves frame dimensions. Stages that transform pixel
// colors never modify a sample whose alpha is 0; stages that draw
// decorations (glow, strokes, scan lines, sparkles) paint over any sample,
// as a canvas draw would.
//
// Neighborhood filters take an explicit input and a separate output. When
// both arguments are the same pixmap the input is snapshotted first, so
// no output sample ever depends on an already-filtered neighbor.
//
// Channel values written by a stage are rounded half to even and
// clamped to [0, 255], matching canvas clamped-array storage.
package filter
