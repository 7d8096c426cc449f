// Package builder assembles widget trees from declarative documents. Kinds
// map document nodes to widget and cell renderer constructors; documents are
// decoded from YAML or JSON or derived from an OpenAPI operation.
package builder
