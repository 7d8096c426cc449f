// Package template defines the template engine seam used by template-backed
// widgets and cell renderers. Engines render named templates or inline
// template strings against a data context.
package template
