// Package colorspace defines the contract between the three pixel
// representations of the engine:
//
//   - Storage: packed values from package pixel (or any comparable type),
//   - Working: float tuples used for all arithmetic,
//   - Key: float tuples used only for equality and distance decisions.
//
// A [Space] bundles the conversion triad Decode (Storage→Working), Project
// (Working→Key) and Encode (Working→Storage). Spaces are zero-size structs
// passed as type arguments, so calls dispatch statically. Spaces that convert
// nothing announce it through [IdentityCodec] and [IdentityProjection]; generic
// consumers test for those once per instantiation and pick a copy path, never
// per pixel.
package colorspace
