// Package pixel implements the colors and images used by the ILI9341 driver.
//
// Colors are 16-bit RGB565 values compatible with Go's native [color.Color]
// and [image.Image] / [draw.Image] interfaces.
package pixel
