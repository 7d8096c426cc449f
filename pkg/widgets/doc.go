// Package widgets provides the concrete widgets assembled into form trees:
// the form and its layout containers, text and numeric entries, option
// controls, buttons and content blocks. Each widget embeds ui.Base (or
// ui.ContainerBase) and follows the init, process and display lifecycle.
package widgets
