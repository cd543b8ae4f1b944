// Package normalize converts timestamp strings between timezones.
//
// A timestamp is parsed against an ordered list of accepted layouts,
// interpreted as civil time in the source timezone, converted to the target
// timezone, and re-serialized in the EXIF layout ("2006:01:02 15:04:05").
package normalize
