// Package cleaner provides composable content cleaners. A cleaner takes text
// in one format and returns it in a simpler one; chained together they turn
// HTML or Markdown into plain text.
package cleaner

// Cleaner transforms content into a simpler format.
type Cleaner interface {
	// Clean transforms the input. The output format depends on the implementation.
	Clean(content string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}
