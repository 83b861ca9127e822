// Package kinds keeps the catalog of component kinds and loads kind
// definitions from JSON, YAML, and HCL files or from the component schemas of
// an OpenAPI 3 document. Each definition co-locates a kind's default content,
// its constraint set, and its template.
package kinds
