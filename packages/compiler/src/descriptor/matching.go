package descriptor

import (
	"fmt"
	"regexp"
	"strings"

	"rzc-go/packages/compiler/src/util"
)

// NameComparison controls how a required attribute name is compared
type NameComparison int

const (
	NameComparisonFullMatch NameComparison = iota
	NameComparisonPrefixMatch
)

// ValueComparison controls how a required attribute value is compared
type ValueComparison int

const (
	ValueComparisonNone ValueComparison = iota
	ValueComparisonFullMatch
	ValueComparisonPrefixMatch
	ValueComparisonSuffixMatch
)

// RequiredAttributeRegexp represents the regex group indices for required attribute parsing
type RequiredAttributeRegexp int

const (
	RequiredAttributeRegexpAll          RequiredAttributeRegexp = iota
	RequiredAttributeRegexpBracketName                          // 1: name inside [...]
	RequiredAttributeRegexpOperator                             // 2: "=", "^=" or "$="
	RequiredAttributeRegexpValueDouble                          // 3: double quoted value
	RequiredAttributeRegexpValueSingle                          // 4: single quoted value
	RequiredAttributeRegexpValueBare                            // 5: unquoted value
	RequiredAttributeRegexpName                                 // 6: bare name
	RequiredAttributeRegexpWildcard                             // 7: "*"
	RequiredAttributeRegexpSeparator                            // 8: "," or end of input
)

// requiredAttributeRegexp matches one required attribute predicate and its trailing separator.
var requiredAttributeRegexp = regexp.MustCompile(
	`^\s*(?:` +
		`\[\s*([^\s\[\]=^$,]+?)\s*` + // 1: [name
		`(?:(\^=|\$=|=)\s*(?:"([^"]*)"|'([^']*)'|([^\]'"]*?)))?\s*\]` + // 2: op; 3,4,5: value
		`|` +
		`([^\s\[\],*=]+)(\*)?` + // 6: name; 7: prefix wildcard
		`)\s*(,|$)`, // 8: separator
)

// RequiredAttribute is a single predicate of a tag matching rule
type RequiredAttribute struct {
	Name                 string
	NameComparison       NameComparison
	Value                string
	ValueComparison      ValueComparison
	IsDirectiveAttribute bool
}

// ParseRequiredAttributes parses the required-attribute grammar:
// `name`, `name*`, `[name]`, `[name=value]`, `[name^=value]`, `[name$=value]`, comma-separated.
func ParseRequiredAttributes(text string) ([]*RequiredAttribute, error) {
	results := []*RequiredAttribute{}
	if strings.TrimSpace(text) == "" {
		return results, nil
	}

	rest := text
	position := 0
	for {
		match := requiredAttributeRegexp.FindStringSubmatchIndex(rest)
		if match == nil {
			return nil, fmt.Errorf("invalid required attribute at offset %d in %q", position, text)
		}
		group := func(g RequiredAttributeRegexp) (string, bool) {
			start, end := match[2*int(g)], match[2*int(g)+1]
			if start < 0 {
				return "", false
			}
			return rest[start:end], true
		}

		attr := &RequiredAttribute{}
		if name, ok := group(RequiredAttributeRegexpBracketName); ok {
			attr.Name = name
			if op, ok := group(RequiredAttributeRegexpOperator); ok {
				switch op {
				case "=":
					attr.ValueComparison = ValueComparisonFullMatch
				case "^=":
					attr.ValueComparison = ValueComparisonPrefixMatch
				case "$=":
					attr.ValueComparison = ValueComparisonSuffixMatch
				}
				// Only one of the value groups will match based on quote type
				if v, ok := group(RequiredAttributeRegexpValueDouble); ok {
					attr.Value = v
				} else if v, ok := group(RequiredAttributeRegexpValueSingle); ok {
					attr.Value = v
				} else if v, ok := group(RequiredAttributeRegexpValueBare); ok {
					attr.Value = strings.TrimSpace(v)
				}
				if attr.ValueComparison != ValueComparisonFullMatch && attr.Value == "" {
					return nil, fmt.Errorf("required attribute %q uses %q without a value", attr.Name, op)
				}
			}
		} else if name, ok := group(RequiredAttributeRegexpName); ok {
			attr.Name = name
			if _, ok := group(RequiredAttributeRegexpWildcard); ok {
				attr.NameComparison = NameComparisonPrefixMatch
			}
		}
		attr.IsDirectiveAttribute = util.IsDirectiveName(attr.Name)
		results = append(results, attr)

		separator, _ := group(RequiredAttributeRegexpSeparator)
		consumed := match[1]
		position += consumed
		rest = rest[consumed:]
		if separator == "" {
			break
		}
		if strings.TrimSpace(rest) == "" {
			return nil, fmt.Errorf("expected a required attribute after ',' in %q", text)
		}
	}
	return results, nil
}

// MatchesName reports whether an attribute name satisfies the predicate.
// Directive attribute parameters (`:get`) are ignored when comparing.
func (r *RequiredAttribute) MatchesName(attributeName string, caseSensitive bool) bool {
	if r.IsDirectiveAttribute {
		attributeName, _ = util.SplitDirectiveName(attributeName)
	}
	switch r.NameComparison {
	case NameComparisonPrefixMatch:
		if len(attributeName) <= len(r.Name) {
			return false
		}
		return equalName(attributeName[:len(r.Name)], r.Name, caseSensitive)
	default:
		return equalName(attributeName, r.Name, caseSensitive)
	}
}

// MatchesValue reports whether an attribute value satisfies the predicate
func (r *RequiredAttribute) MatchesValue(value string) bool {
	switch r.ValueComparison {
	case ValueComparisonFullMatch:
		return value == r.Value
	case ValueComparisonPrefixMatch:
		return strings.HasPrefix(value, r.Value)
	case ValueComparisonSuffixMatch:
		return strings.HasSuffix(value, r.Value)
	default:
		return true
	}
}

// String returns the predicate in its source grammar
func (r *RequiredAttribute) String() string {
	op := ""
	switch r.ValueComparison {
	case ValueComparisonFullMatch:
		op = "="
	case ValueComparisonPrefixMatch:
		op = "^="
	case ValueComparisonSuffixMatch:
		op = "$="
	}
	if op != "" {
		return fmt.Sprintf("[%s%s%s]", r.Name, op, r.Value)
	}
	if r.NameComparison == NameComparisonPrefixMatch {
		return r.Name + "*"
	}
	return r.Name
}

// Attribute is an attribute occurrence as seen by tag matching
type Attribute struct {
	Name  string
	Value string
}

// TagMatchingRule decides whether a descriptor applies to a tag
type TagMatchingRule struct {
	// TagName is the tag to match, or "*" for any tag.
	TagName       string
	ParentTag     string
	Attributes    []*RequiredAttribute
	CaseSensitive bool
}

// WildcardTagName matches any tag
const WildcardTagName = "*"

// NewTagMatchingRule builds a rule from a tag name and a required-attribute expression
func NewTagMatchingRule(tagName, parentTag, requiredAttributes string, caseSensitive bool) (*TagMatchingRule, error) {
	attrs, err := ParseRequiredAttributes(requiredAttributes)
	if err != nil {
		return nil, err
	}
	if tagName == "" {
		tagName = WildcardTagName
	}
	return &TagMatchingRule{
		TagName:       tagName,
		ParentTag:     parentTag,
		Attributes:    attrs,
		CaseSensitive: caseSensitive,
	}, nil
}

// mustRule is NewTagMatchingRule for built-in rules known to be valid
func mustRule(tagName, requiredAttributes string) *TagMatchingRule {
	rule, err := NewTagMatchingRule(tagName, "", requiredAttributes, false)
	if err != nil {
		panic(fmt.Sprintf("AssertionError: invalid built-in rule %q: %v", requiredAttributes, err))
	}
	return rule
}

// MatchesTag reports whether the rule's tag and parent constraints are satisfied
func (r *TagMatchingRule) MatchesTag(tagName, parentTag string) bool {
	if r.TagName != WildcardTagName && !equalName(r.TagName, tagName, r.CaseSensitive) {
		return false
	}
	if r.ParentTag != "" && !equalName(r.ParentTag, parentTag, r.CaseSensitive) {
		return false
	}
	return true
}

// Matches reports whether every required attribute is present on the tag
func (r *TagMatchingRule) Matches(tagName, parentTag string, attrs []Attribute) bool {
	if !r.MatchesTag(tagName, parentTag) {
		return false
	}
	for _, required := range r.Attributes {
		found := false
		for _, attr := range attrs {
			if required.MatchesName(attr.Name, r.CaseSensitive) && required.MatchesValue(attr.Value) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// MatchingRule returns the first rule of d satisfied by the tag, or nil
func (d *Descriptor) MatchingRule(tagName, parentTag string, attrs []Attribute) *TagMatchingRule {
	for _, rule := range d.TagMatchingRules {
		if rule.Matches(tagName, parentTag, attrs) {
			return rule
		}
	}
	return nil
}
