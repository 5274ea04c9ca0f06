package gen

import (
	"go/token"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	rules    = ruleset()
	acronyms = make(map[string]struct{})
	title    = cases.Title(language.Und)
)

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	// Common initialisms from golint, plus schema ones.
	for _, w := range []string{"ACL", "API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "QName", "RPC", "SMTP", "SQL", "SSH", "TCP", "TLS", "TTL", "UDP", "UI", "UID", "URI", "URL", "UTF8", "UUID", "VM", "XML", "XMPP", "XSD", "XSRF", "XSS"} {
		acronyms[strings.ToUpper(w)] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

// Pascal converts a schema name such as "ship-to", "order_date" or
// "orderDate" to an exported Go identifier.
//
//	Pascal("order_date") // OrderDate
//	Pascal("shipTo-id")  // ShipToID
func Pascal(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, w := range words {
		upper := strings.ToUpper(w)
		switch {
		case isAcronym(upper):
			words[i] = upper
		case w == upper:
			words[i] = title.String(w)
		default:
			words[i] = rules.Capitalize(w)
		}
	}
	name := strings.Join(words, "")
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "X" + name
	}
	return name
}

func isAcronym(s string) bool {
	_, ok := acronyms[s]
	return ok
}

// Plural returns the plural form of an identifier.
func Plural(s string) string { return rules.Pluralize(s) }

// IsIdentifier reports whether s can name a Go declaration: a non-keyword
// made of letters, digits and underscores, not starting with a digit.
func IsIdentifier(s string) bool { return token.IsIdentifier(s) }

// Exported upper-cases the first rune of s. Enum constants are declared
// under this form, so two names differing only there collide.
func Exported(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Receiver returns the receiver name of methods on a type.
func Receiver(typeName string) string {
	for _, r := range typeName {
		if unicode.IsLetter(r) {
			return string(unicode.ToLower(r))
		}
	}
	return "x"
}

// ParamName returns an unexported parameter name for a field name,
// avoiding keywords.
func ParamName(s string) string {
	if s == "" {
		return "v"
	}
	if upper := strings.ToUpper(s); isAcronym(upper) && upper == s {
		return strings.ToLower(s)
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	name := string(r)
	if token.Lookup(name).IsKeyword() {
		return "_" + name
	}
	return name
}

// Snake converts a Go identifier to snake case, keeping initialisms
// together.
//
//	Snake("USAddress") // us_address
//	Snake("UserIDs")   // user_ids
func Snake(s string) string {
	var (
		j int
		b strings.Builder
	)
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		// Split before an upper case letter that follows a lower case one
		// ("UserInfo"), or that starts a word after an initialism
		// ("HTTPCode").
		if i > 0 && i < len(s)-1 && unicode.IsUpper(r) {
			if unicode.IsLower(rune(s[i-1])) ||
				j != i-1 && unicode.IsLower(rune(s[i+1])) && unicode.IsLetter(rune(s[i-1])) {
				j = i
				b.WriteString("_")
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
