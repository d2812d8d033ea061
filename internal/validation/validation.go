// Package validation binds request bodies and turns validator failures into
// field-level errors the site's forms can display.
package validation
