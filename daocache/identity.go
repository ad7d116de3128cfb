package daocache

import (
	"reflect"
	"strings"
	"unicode"
)

// TypeIdentity derives a store type identity from the dynamic type of v:
// the import path of the declaring package, a dot, and the type name in
// snake_case. Pointers are stripped, so (*app.UserStore)(nil) yields
// "example.com/app.user_store". Same-named types from different packages
// never share an identity.
func TypeIdentity(v any) string {
	if v == nil {
		return ""
	}
	return identityOf(reflect.TypeOf(v))
}

// IdentityOf is TypeIdentity for a static type parameter.
func IdentityOf[T any]() string {
	return identityOf(reflect.TypeOf((*T)(nil)).Elem())
}

func identityOf(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if name == "" {
		return qualifyArgs(t.String())
	}

	// generic instantiations carry fully qualified type arguments
	var args string
	if i := strings.IndexByte(name, '['); i >= 0 {
		name, args = name[:i], qualifyArgs(name[i:])
	}
	name = toSnake(name)
	if pkg := t.PkgPath(); pkg != "" {
		name = pkg + "." + name
	}
	return name + args
}

// qualifyArgs snake cases every type name in a type expression such as
// "[example.com/app.UserStore,int]", keeping package paths and punctuation.
func qualifyArgs(expr string) string {
	var b strings.Builder
	start := 0
	flush := func(end int) {
		if start < end {
			b.WriteString(qualifiedName(expr[start:end]))
		}
	}
	for i, r := range expr {
		switch r {
		case '[', ']', ',', ' ', '*':
			flush(i)
			b.WriteRune(r)
			start = i + 1
		}
	}
	flush(len(expr))
	return b.String()
}

func qualifiedName(s string) string {
	i := strings.LastIndexByte(s, '.')
	if i < 0 {
		return s
	}
	return s[:i+1] + toSnake(s[i+1:])
}

// toSnake converts s to snake_case. Punctuation collapses into a single
// underscore so the result is safe inside memcache and redis keys.
func toSnake(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(runes) + len(runes)/2)

	underscore := false
	sep := func() {
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}

	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					sep()
				}
			}
			b.WriteRune(unicode.ToLower(r))
			underscore = false
		case unicode.IsLower(r):
			b.WriteRune(r)
			underscore = false
		case unicode.IsDigit(r):
			if i > 0 && unicode.IsLetter(runes[i-1]) {
				sep()
			}
			b.WriteRune(r)
			underscore = false
		default:
			sep()
		}
	}

	return strings.Trim(b.String(), "_")
}
