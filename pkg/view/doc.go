// Package view hosts NodeRenderer, the entry point that turns a graph node into
// markup. A call to View resolves the rendering context and data source,
// computes the node types once, asks the renderer registry for the best
// strategy and hands the winner's result to the render callback.
//
// Failures never escape as errors: a missing node, a value that is not a node
// or a node no renderer accepts all come back as inline warning markup.
package view
