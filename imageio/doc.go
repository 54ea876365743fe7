// Package imageio bridges image files and the codec's pixel buffers.
//
// The codec itself never touches the filesystem or a file format; this
// package is the collaborator that decodes PNG, JPEG, GIF, and BMP carriers
// into a [stego.PixelBuffer] and persists the stamped result. Output is
// restricted to lossless formats (PNG, BMP) because a lossy re-encode
// destroys the embedded payload.
package imageio
