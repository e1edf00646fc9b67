// Package ext layers domain conveniences over the core codec: typed specs
// for common vertex/face layouts, whole-mesh and Gaussian-splat load/save
// helpers, and geo-referencing / texture-path metadata carried in ordinary
// comment lines. Nothing here adds wire behavior; everything goes through
// the column binding layer and the header protocol unchanged.
package ext
