package gateway

import (
	"encoding/json"
	"net/url"
)

// Query is one filter/modifier predicate of a document list request,
// serialized as JSON into the queries[] URL parameter.
type Query struct {
	Method    string `json:"method"`
	Attribute string `json:"attribute,omitempty"`
	Values    []any  `json:"values,omitempty"`
}

func Equal(attribute string, value any) Query {
	return Query{Method: "equal", Attribute: attribute, Values: []any{value}}
}

func GreaterThan(attribute string, value any) Query {
	return Query{Method: "greaterThan", Attribute: attribute, Values: []any{value}}
}

// Search matches documents whose attribute full-text-matches the term.
func Search(attribute, term string) Query {
	return Query{Method: "search", Attribute: attribute, Values: []any{term}}
}

func OrderDesc(attribute string) Query {
	return Query{Method: "orderDesc", Attribute: attribute}
}

func Limit(n int) Query {
	return Query{Method: "limit", Values: []any{n}}
}

// encodeQueries renders predicates into the queries[] URL values.
func encodeQueries(queries []Query) url.Values {
	if len(queries) == 0 {
		return nil
	}
	v := url.Values{}
	for _, q := range queries {
		data, err := json.Marshal(q)
		if err != nil {
			continue // Query contains only marshalable fields
		}
		v.Add("queries[]", string(data))
	}
	return v
}
