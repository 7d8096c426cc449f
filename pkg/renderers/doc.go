// Package renderers provides the stock cell renderers used by table and
// details views: text, null-aware text, booleans, locale formatted numbers,
// links, images, templates, and the checkbox and radio selectors.
package renderers
