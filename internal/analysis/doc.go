// SPDX-License-Identifier: MPL-2.0

// Package analysis loads a binary+metadata input pair into the ordered
// sequence of images a dump run works on. The binary is sniffed for its
// container format (ELF, PE, Mach-O); the companion metadata bundle is a
// versioned JSON document produced by an upstream extractor. The package
// also builds the per-image type model consumed by the renderers.
package analysis
