// Package validation turns a field descriptor and its current value into a
// verdict. Checks run in a fixed order (required, length, email format,
// numeric range) and the first failure wins. Verdicts are display strings;
// an empty string means the value passes.
package validation
