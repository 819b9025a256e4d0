// Package render writes Poincaré sections to image and HTML files.
//
// Every plot is square with theta on the x axis and omega on the y
// axis. The y range follows the data with 5% padding and both axes
// carry integer ticks. PNG and SVG files are drawn with gonum/plot, the
// interactive HTML page with go-echarts.
package render
