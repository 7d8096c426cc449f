// Package optionsearch serves the options of a choice widget as JSON search
// results, so large option sets can back autocomplete inputs instead of being
// rendered into a single <select>.
//
// The default handler responds to GET and HEAD requests and supports query and
// limit parameters to filter results. Options come from an option.Control, an
// explicit list, or a line based catalog read with LoadOptions.
package optionsearch
