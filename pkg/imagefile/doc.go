// Package imagefile rewrites the EXIF datetime tags of an image file.
//
// Tags are read with goexif and staged replacements are applied in a single
// container rewrite that preserves all other tags and the pixel data.
package imagefile
