package booking

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SearchQuery is a parsed search term. When ByArea is set the query is an
// exact (City, State) lookup; otherwise Term is matched as a
// case-insensitive substring of the name.
type SearchQuery struct {
	Raw    string
	Term   string
	ByArea bool
	City   string
	State  string
}

// ParseSearch interprets a free-text term. A term containing a comma is read
// as "City, State": city words are capitalized and the state is upper-cased.
func ParseSearch(raw string) SearchQuery {
	q := SearchQuery{Raw: raw, Term: strings.TrimSpace(raw)}
	i := strings.Index(q.Term, ",")
	if i < 0 {
		return q
	}
	q.ByArea = true
	words := strings.Fields(q.Term[:i])
	for j, w := range words {
		words[j] = capitalize(w)
	}
	q.City = strings.Join(words, " ")
	q.State = strings.ToUpper(strings.TrimSpace(q.Term[i+1:]))
	return q
}

// Matches reports whether an entity with the given name and location
// satisfies the query.
func (q SearchQuery) Matches(name, city, state string) bool {
	if q.ByArea {
		return city == q.City && state == q.State
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(q.Term))
}

// LikePattern returns the LIKE argument for a name search against a
// lower-cased column. % and _ in the term are escaped.
func (q SearchQuery) LikePattern() string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(q.Term)) + "%"
}

func capitalize(w string) string {
	r, n := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[n:])
}
