// Package grammar implements the `[…]` token templater: spec.md §6.7.
// Grounded on original_source's util/src/grammar.rs (Noun, Sentence,
// the conjugation token table) and its templatize test corpus, which this
// package's tests reproduce directly.
package grammar

// Kind distinguishes a Noun's grammatical person.
type Kind int

const (
	You Kind = iota
	He
	She
	It
	Plural
)

// Noun is the grammatical subject or object of a templated sentence: the
// player ("you"), a named NPC ("he"/"she"), a generic thing ("it"), or a
// stack ("they").
type Noun struct {
	Kind Kind
	Name string
}

// NounYou is the player's noun; it carries no name.
func NounYou() Noun { return Noun{Kind: You} }

// NounHe/NounShe/NounIt/NounPlural build a named noun of the given kind.
func NounHe(name string) Noun     { return Noun{Kind: He, Name: name} }
func NounShe(name string) Noun    { return Noun{Kind: She, Name: name} }
func NounIt(name string) Noun     { return Noun{Kind: It, Name: name} }
func NounPlural(name string) Noun { return Noun{Kind: Plural, Name: name} }

func (n Noun) thirdPersonSingular() bool {
	return n.Kind == He || n.Kind == She || n.Kind == It
}

func (n Noun) isYou() bool { return n.Kind == You }

func (n Noun) name() string {
	if n.Kind == You {
		return "you"
	}
	return n.Name
}

func (n Noun) isProperNoun() bool { return isCapitalized(n.name()) }

// theName renders "you" / "Alexander" / "the goblin".
func (n Noun) theName() string {
	if n.isYou() {
		return "you"
	}
	if n.isProperNoun() {
		return n.name()
	}
	return "the " + n.name()
}

// aName renders "you" / "Alexander" / "a goblin" / "an owlbear" / "2 rocks".
func (n Noun) aName() string {
	if n.isYou() {
		return "you"
	}
	if n.isProperNoun() || n.Kind == Plural {
		return n.name()
	}
	article := "a"
	if nm := n.name(); len(nm) > 0 && isVowel(rune(nm[0])) {
		article = "an"
	}
	return article + " " + n.name()
}

func (n Noun) they() string {
	switch n.Kind {
	case You:
		return "you"
	case He:
		return "he"
	case She:
		return "she"
	case It:
		return "it"
	case Plural:
		return "they"
	}
	return "it"
}

func (n Noun) them() string {
	switch n.Kind {
	case You:
		return "you"
	case He:
		return "him"
	case She:
		return "her"
	case It:
		return "it"
	case Plural:
		return "them"
	}
	return "it"
}

func (n Noun) their() string {
	switch n.Kind {
	case You:
		return "your"
	case He:
		return "his"
	case She:
		return "her"
	case It:
		return "its"
	case Plural:
		return "their"
	}
	return "its"
}

func (n Noun) possessive() string {
	if n.isYou() {
		return "your"
	}
	return n.theName() + "'s"
}

func (n Noun) themselves() string {
	switch n.Kind {
	case You:
		return "yourself"
	case He:
		return "himself"
	case She:
		return "herself"
	case It:
		return "itself"
	case Plural:
		return "themselves"
	}
	return "itself"
}

func isCapitalized(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c >= 'A' && c <= 'Z'
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	default:
		return false
	}
}
