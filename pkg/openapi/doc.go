// Package openapi describes a form's value table as an OpenAPI 3 document so
// HTTP clients can submit values for substitution. Documents are built with
// kin-openapi and validated by reloading them through its loader.
package openapi
