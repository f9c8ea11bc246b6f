// Package textnorm cleans model output into text a Vietnamese TTS voice can
// read: no reasoning tags or lead-in phrases, ungrouped numbers, spelled-out
// dates, repaired word spacing and a complete final sentence.
package textnorm

// Rule is one named rewrite pass. Apply must be pure and deterministic.
type Rule struct {
	Name  string
	Apply func(string) string
}

// maxPasses bounds how many times the whole rule list is re-applied while
// looking for a fixed point.
const maxPasses = 4

// Normalizer applies an ordered list of rules.
type Normalizer struct {
	rules []Rule
}

// New creates a Normalizer running rules in the given order.
func New(rules ...Rule) *Normalizer {
	return &Normalizer{rules: rules}
}

// Default returns a Normalizer with DefaultRules.
func Default() *Normalizer {
	return New(DefaultRules()...)
}

// Rules returns a copy of the rule list.
func (n *Normalizer) Rules() []Rule {
	out := make([]Rule, len(n.rules))
	copy(out, n.rules)
	return out
}

// Normalize runs the rule list until the text stops changing, so that
// Normalize(Normalize(x)) == Normalize(x).
func (n *Normalizer) Normalize(text string) string {
	for range maxPasses {
		next := n.pass(text)
		if next == text {
			return next
		}
		text = next
	}
	return text
}

func (n *Normalizer) pass(text string) string {
	for _, rule := range n.rules {
		text = rule.Apply(text)
	}
	return text
}

// DefaultRules is the standard pass order. Later rules assume the earlier
// ones already ran: dates are rewritten after digit groups are collapsed, and
// sentence completion sees whitespace that is already collapsed.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "unicode-nfc", Apply: ComposeNFC},
		{Name: "strip-lead-in", Apply: StripLeadIn},
		{Name: "strip-quotes", Apply: StripEnclosingQuotes},
		{Name: "ungroup-digits", Apply: UngroupDigits},
		{Name: "comma-spacing", Apply: SpaceAfterComma},
		{Name: "split-case-boundary", Apply: SplitCaseBoundary},
		{Name: "split-n-khoi", Apply: SplitNKhoi},
		{Name: "split-syllable-run", Apply: SplitSyllableRun},
		{Name: "spell-dates", Apply: SpellDates},
		{Name: "collapse-whitespace", Apply: CollapseWhitespace},
		{Name: "complete-sentence", Apply: CompleteSentence},
	}
}
