// Package inspect renders ConnMan entities, raw property maps and
// dispatched notifications as text for the command-line tools.
package inspect
