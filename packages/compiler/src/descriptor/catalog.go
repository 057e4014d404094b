package descriptor

import (
	"sort"
	"strings"
)

// Catalog is the immutable, queryable-by-tag list of descriptors for one compilation.
type Catalog struct {
	descriptors []*Descriptor
	byTag       map[string][]*Descriptor
	catchAll    []*Descriptor
	order       map[*Descriptor]int
}

// NewCatalog indexes descriptors by the tag names of their matching rules
func NewCatalog(descriptors []*Descriptor) *Catalog {
	c := &Catalog{
		descriptors: append([]*Descriptor(nil), descriptors...),
		byTag:       make(map[string][]*Descriptor),
		order:       make(map[*Descriptor]int),
	}
	for i, d := range c.descriptors {
		if _, ok := c.order[d]; !ok {
			c.order[d] = i
		}
		seen := map[string]bool{}
		for _, rule := range d.TagMatchingRules {
			if rule.TagName == WildcardTagName {
				if !seen[WildcardTagName] {
					c.catchAll = append(c.catchAll, d)
					seen[WildcardTagName] = true
				}
				continue
			}
			key := strings.ToLower(rule.TagName)
			if seen[key] {
				continue
			}
			seen[key] = true
			c.byTag[key] = append(c.byTag[key], d)
		}
	}
	return c
}

// NewCatalogWithBuiltins creates a catalog holding the built-in helpers followed by descriptors
func NewCatalogWithBuiltins(descriptors []*Descriptor) *Catalog {
	return NewCatalog(append(Builtins(), descriptors...))
}

// Descriptors returns every descriptor in the catalog
func (c *Catalog) Descriptors() []*Descriptor {
	return append([]*Descriptor(nil), c.descriptors...)
}

// ForTag returns the descriptors that have at least one rule for tagName (or any tag),
// in catalog order.
func (c *Catalog) ForTag(tagName string) []*Descriptor {
	specific := c.byTag[strings.ToLower(tagName)]
	result := make([]*Descriptor, 0, len(specific)+len(c.catchAll))
	for _, d := range specific {
		for _, rule := range d.TagMatchingRules {
			if rule.TagName != WildcardTagName && equalName(rule.TagName, tagName, rule.CaseSensitive) {
				result = append(result, d)
				break
			}
		}
	}
	result = append(result, c.catchAll...)
	sort.SliceStable(result, func(i, j int) bool {
		return c.order[result[i]] < c.order[result[j]]
	})
	return result
}

// Match returns the descriptors with a rule satisfied by the tag, in catalog order
func (c *Catalog) Match(tagName, parentTag string, attrs []Attribute) []*Descriptor {
	var result []*Descriptor
	for _, d := range c.ForTag(tagName) {
		if d.MatchingRule(tagName, parentTag, attrs) != nil {
			result = append(result, d)
		}
	}
	return result
}

// Components returns the component descriptors in the catalog
func (c *Catalog) Components() []*Descriptor {
	var result []*Descriptor
	for _, d := range c.descriptors {
		if d.IsComponent() {
			result = append(result, d)
		}
	}
	return result
}
