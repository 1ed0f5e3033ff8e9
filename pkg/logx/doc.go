// Package logx is aocnotify's structured logger.
//
// It wraps zerolog and can emit to multiple sinks:
//   - Console (human-friendly pretty output)
//   - File (JSON lines, append-only)
//
// Call sites pass typed fields (String, Int, Err, ...) instead of format
// strings so file output stays machine-readable.
package logx
