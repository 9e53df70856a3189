// Package schemaio reads form schemas. Documents are JSON or YAML files with
// a top-level "fields" list using the descriptor keys name, type, required,
// label, minLength, maxLength, min, max and options. FromOpenAPI derives the
// same field list from an OpenAPI operation's request body so an existing
// API contract can drive a form without a separate schema file.
package schemaio
