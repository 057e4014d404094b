package ir

import (
	"strings"

	"rzc-go/packages/compiler/src/util"
)

// Token is a fragment of an attribute value or expression
type Token struct {
	Kind    TokenKind
	Content string
}

// HTML creates a literal markup token
func HTML(content string) *Token {
	return &Token{Kind: TokenKindHTML, Content: content}
}

// Code creates a host-language token
func Code(content string) *Token {
	return &Token{Kind: TokenKindCode, Content: content}
}

// Tokens is an ordered list of tokens making up one value
type Tokens []*Token

// String concatenates the token contents
func (t Tokens) String() string {
	var sb strings.Builder
	for _, token := range t {
		sb.WriteString(token.Content)
	}
	return sb.String()
}

// IsEmpty reports whether the value has no non-whitespace content
func (t Tokens) IsEmpty() bool {
	return strings.TrimSpace(t.String()) == ""
}

// IsLiteral reports whether every token is literal markup
func (t Tokens) IsLiteral() bool {
	for _, token := range t {
		if token.Kind != TokenKindHTML {
			return false
		}
	}
	return true
}

// AsCode renders the value as host-language code. Literal markup becomes a string literal and
// mixed values are concatenated.
func (t Tokens) AsCode() string {
	if len(t) == 0 {
		return ""
	}
	if t.IsLiteral() {
		return util.Quote(t.String())
	}
	parts := []string{}
	code := ""
	for _, token := range t {
		if token.Kind == TokenKindHTML {
			if code != "" {
				parts = append(parts, code)
				code = ""
			}
			parts = append(parts, util.Quote(token.Content))
			continue
		}
		code += token.Content
	}
	if code != "" {
		parts = append(parts, code)
	}
	return strings.Join(parts, " + ")
}

// Clone returns a copy of the list with copied tokens
func (t Tokens) Clone() Tokens {
	if t == nil {
		return nil
	}
	result := make(Tokens, len(t))
	for i, token := range t {
		copied := *token
		result[i] = &copied
	}
	return result
}

// Wrap builds the code value `prefix + value + suffix`.
func (t Tokens) Wrap(prefix, suffix string) Tokens {
	if len(t) == 1 && t[0].Kind == TokenKindCode {
		return CodeValue(prefix + t[0].Content + suffix)
	}
	return CodeValue(prefix + t.AsCode() + suffix)
}

// CodeValue creates a single-token code value
func CodeValue(content string) Tokens {
	return Tokens{Code(content)}
}

// HTMLValue creates a single-token literal value
func HTMLValue(content string) Tokens {
	return Tokens{HTML(content)}
}
