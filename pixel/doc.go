// Package pixel implements the storage side of the pixel engine: packed pixel
// types as they live in memory and in files, flat pixel buffers and packed
// indexed images.
//
// Every storage type is compatible with Go's native [color.Color] and has a
// [color.Model]. Conversions between storage types of different bit depths go
// through [UNorm32], a fixed-point [0,1] value with exact round-trip for any
// channel width up to 32 bits.
package pixel
