// Package template defines the template engine seam used by the HTML
// renderer. The default implementation lives in the gotemplate subpackage.
package template
