package sections

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pwtune/internal/catalog"
)

// DefaultUnscopedTitle labels the section holding keys without a dot.
const DefaultUnscopedTitle = "General"

// Kind is the editing control a key calls for.
type Kind int

const (
	KindText Kind = iota
	KindToggle
	KindNumber
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindToggle:
		return "toggle"
	case KindNumber:
		return "number"
	case KindChoice:
		return "choice"
	default:
		return "text"
	}
}

// KindOf picks the control for an entry: booleans toggle, numbers spin,
// strings with options choose, any other string is free text.
func KindOf(entry catalog.DefaultEntry) Kind {
	switch entry.Value.Kind() {
	case catalog.KindBool:
		return KindToggle
	case catalog.KindNumber:
		return KindNumber
	}
	if entry.HasOptions() {
		return KindChoice
	}
	return KindText
}

// Policy controls placement and naming of the unscoped section.
type Policy struct {
	UnscopedTitle string
	UnscopedLast  bool
}

// DefaultPolicy puts an unscoped "General" section first.
func DefaultPolicy() Policy {
	return Policy{UnscopedTitle: DefaultUnscopedTitle}
}

// Entry is one key within a section.
type Entry struct {
	Key      string
	Property string
	Label    string
	Kind     Kind
	Default  catalog.DefaultEntry
}

// Section is a titled group of entries sharing a dotted prefix. ID is empty
// for the unscoped section.
type Section struct {
	ID      string
	Title   string
	Entries []Entry
}

// Unscoped reports whether the section collects keys without a prefix.
func (s Section) Unscoped() bool { return s.ID == "" }

// Group partitions defaults into sections. Entries within a section are
// ordered byte-wise by property. Sections are ordered by title with the
// unscoped section placed first or last according to policy.
func Group(defaults catalog.Defaults, policy Policy) []Section {
	if strings.TrimSpace(policy.UnscopedTitle) == "" {
		policy.UnscopedTitle = DefaultUnscopedTitle
	}

	byID := make(map[string]*Section)
	for key, entry := range defaults.Entries() {
		id, property, scoped := strings.Cut(key, ".")
		if !scoped {
			id, property = "", key
		}
		sec, ok := byID[id]
		if !ok {
			title := policy.UnscopedTitle
			if id != "" {
				title = TitleCase(id)
			}
			sec = &Section{ID: id, Title: title}
			byID[id] = sec
		}
		sec.Entries = append(sec.Entries, Entry{
			Key:      key,
			Property: property,
			Label:    SentenceLabel(property),
			Kind:     KindOf(entry),
			Default:  entry,
		})
	}

	var unscoped *Section
	scoped := make([]Section, 0, len(byID))
	for id, sec := range byID {
		sort.Slice(sec.Entries, func(i, j int) bool {
			return sec.Entries[i].Property < sec.Entries[j].Property
		})
		if id == "" {
			unscoped = sec
			continue
		}
		scoped = append(scoped, *sec)
	}
	sort.Slice(scoped, func(i, j int) bool {
		if scoped[i].Title != scoped[j].Title {
			return scoped[i].Title < scoped[j].Title
		}
		return scoped[i].ID < scoped[j].ID
	})

	if unscoped == nil {
		return scoped
	}
	if policy.UnscopedLast {
		return append(scoped, *unscoped)
	}
	return append([]Section{*unscoped}, scoped...)
}

// TitleCase turns a prefix such as "channel-mix" into "Channel Mix".
func TitleCase(id string) string {
	words := splitWords(id)
	caser := cases.Title(language.English)
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}

// SentenceLabel turns a property such as "upmix-method" into "Upmix method".
func SentenceLabel(property string) string {
	words := splitWords(property)
	if len(words) == 0 {
		return ""
	}
	lower := cases.Lower(language.English)
	for i, w := range words {
		words[i] = lower.String(w)
	}
	words[0] = cases.Title(language.English).String(words[0])
	return strings.Join(words, " ")
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
}
