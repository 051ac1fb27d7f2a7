// Package geom holds the value types the layout scheduler caches per node:
// sizes, rectangles, points, edge insets and dimension values.
//
// Dimensions are float64 so that an unbounded constraint can be expressed
// as positive infinity. Types are re-exported through the root layout
// package for public consumption.
package geom
