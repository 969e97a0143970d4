// Package formats reads and writes the files the tessellator works with.
//
// Patch documents come in two notations that describe the same
// TeaSrfs layout: JSON (ParseTeapotJSON) and a compact text notation
// (ParseTeapotText). Both yield a TeapotDocument whose surfaces convert
// into bezier.Grid values. Tessellated meshes are exported as Wavefront
// OBJ with WriteOBJ.
package formats
