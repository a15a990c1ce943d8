// diag.go — optional diagnostics for silently-degraded forms.
//
// Translation is total: a form outside the recognized grammar compiles to
// the canonical null identifier instead of failing. That silence is the
// contract, but it is also a correctness risk worth surfacing in tooling,
// so every fallback records one Diagnostic on the Translator. Collecting
// them never changes the emitted tree.
package rayscript

import "fmt"

// Diagnostic describes one form that degraded to the null placeholder.
type Diagnostic struct {
	Tag  string // tag of the offending form ("" when shapeless)
	Line int    // source line recorded on the form, 0 when absent
	Msg  string
}

func (d Diagnostic) String() string {
	tag := d.Tag
	if tag == "" {
		tag = "<untagged>"
	}
	return fmt.Sprintf("line %d: %s: %s", d.Line, tag, d.Msg)
}

// Diagnostics returns the fallbacks recorded since the Translator was
// created, in emission order.
func (t *Translator) Diagnostics() []Diagnostic { return t.diags }

// degrade records a diagnostic and returns the canonical null identifier.
func (t *Translator) degrade(f Form, msg string) Node {
	t.diags = append(t.diags, Diagnostic{Tag: formTag(f), Line: formLine(f), Msg: msg})
	return nullIdent()
}

// nullIdent is the single placeholder every unrecognized form compiles to.
func nullIdent() *Identifier { return Ident("null") }
