// Package sanitizer provides input normalization for marketplace data.
//
// All normalization functions are idempotent: applying them multiple times
// produces the same result. Invalid input is handled gracefully, typically by
// returning an empty string or slice rather than an error; validators decide
// whether the normalized value is acceptable.
//
// Normalization includes:
//   - Free text (titles, names, comments): collapse whitespace, trim
//   - Emails: trim, lowercase
//   - Currency codes: trim, uppercase
//   - Image URLs: trim, lowercase host, drop fragments
//   - Amenity names: collapse whitespace, case-insensitive de-duplication
//   - Numbers: clamp to valid ranges
package sanitizer
