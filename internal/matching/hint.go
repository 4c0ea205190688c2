package matching

// Hint carries per-field overrides supplied by an external classifier. Every
// field is independently optional: a present field replaces the rule-derived
// value entirely, an absent (nil) field leaves the rules in charge. The
// pointer types are deliberate — "present and false" and "absent" are
// different answers and must stay distinguishable.
type Hint struct {
	Corporate  *bool
	Actionable *bool
	Advice     *string
}

// HasAdvice reports whether the hint carries usable advice text.
func (h *Hint) HasAdvice() bool {
	return h != nil && h.Advice != nil && *h.Advice != ""
}
