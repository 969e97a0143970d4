// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// PatchVertexShader transforms tessellated patch vertices.
//
//go:embed patch.vert
var PatchVertexShader string

// PatchFragmentShader shades patches with a headlight and a two-sided
// Blinn-Phong term.
//
//go:embed patch.frag
var PatchFragmentShader string
