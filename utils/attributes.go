package utils

import (
	"strings"
)

// AttributeValue A named attribute with one or more values
type AttributeValue struct {
	Name   string
	Values []string
}

func NewAttributeValue(name string, value string) *AttributeValue {
	return &AttributeValue{Name: name, Values: []string{value}}
}

func (a *AttributeValue) AddValue(value string) {
	a.Values = append(a.Values, value)
}

// Value returns the first value
func (a *AttributeValue) Value() string {
	if len(a.Values) == 0 {
		return ""
	}
	return a.Values[0]
}

// Pairs serialises the attribute back to name=value strings, one per value
func (a *AttributeValue) Pairs() []string {
	pairs := make([]string, 0, len(a.Values))
	for _, v := range a.Values {
		pairs = append(pairs, a.Name+"="+v)
	}
	return pairs
}

func splitPair(nameValuePair string) (string, string, error) {
	// only the first '=' separates, the rest belongs to the value
	name, value, found := strings.Cut(nameValuePair, "=")
	if !found {
		return "", "", &MalformedPairError{Pair: nameValuePair}
	}
	return name, value, nil
}

// CreateAttributeValue Creates an AttributeValue from the given name=value pair
func CreateAttributeValue(nameValuePair string) (*AttributeValue, error) {
	name, value, err := splitPair(nameValuePair)
	if err != nil {
		return nil, err
	}
	return NewAttributeValue(name, value), nil
}

// CreateAttributeValueMap builds one AttributeValue per distinct name, merging repeated names in the order seen
func CreateAttributeValueMap(pairs []string) (map[string]*AttributeValue, error) {
	attrs := make(map[string]*AttributeValue)
	for _, pair := range pairs {
		name, value, err := splitPair(pair)
		if err != nil {
			return nil, err
		}

		if attr, ok := attrs[name]; ok {
			attr.AddValue(value)
		} else {
			attrs[name] = NewAttributeValue(name, value)
		}
	}
	return attrs, nil
}
