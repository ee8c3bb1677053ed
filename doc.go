// Package boothfx is the pixel data model of a real-time photo booth
// effects pipeline.
//
// # Overview
//
// A live camera frame is snapshotted into a [Pixmap], run through one
// effect per displayed frame and handed to a presentation surface. The
// effect implementations live in internal packages; the per-frame
// selector and scheduler live in the pipeline package.
//
// # Pixel Format
//
// A [Pixmap] stores non-premultiplied 8-bit RGBA samples, row-major.
// Alpha 0 marks a cut-out region (for example the area removed by body
// segmentation): color stages skip such samples and leave them
// byte-identical.
//
// # Particles
//
// Decorative overlays (wrist trails, pose sparks) are short-lived
// [Particle] values owned by a single [ParticleSet]. A particle's life
// decreases by one per update and it is removed exactly when its life
// reaches zero.
//
// # Logging
//
// boothfx is silent by default. See [SetLogger].
package boothfx
