// Package preflight provides readiness checks for the filesystem paths and
// executables a conversion run depends on.
//
// These checks run in two contexts:
//   - The convert command calls RunAll before touching any item. A failed
//     required check aborts the run with a fatal error.
//   - The "bilimux check" command renders every result for the user.
package preflight
