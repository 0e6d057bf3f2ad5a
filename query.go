package ptax

import (
	"fmt"
	"strings"
)

type Query string

const (
	CatalogQuery      Query = "catalog"
	ClosingRatesQuery Query = "closingrates"
	SnapshotQuery     Query = "snapshot"
	EmptyQuery        Query = ""
)

func ConvertToQueriesFromStringSlice(strings []string) ([]Query, error) {
	queries := make([]Query, 0, len(strings))

	for _, str := range strings {
		query, err := ConvertToQueryFromString(str)
		if err != nil {
			return nil, err
		}

		queries = append(queries, query)
	}

	return queries, nil
}

func ConvertToQueryFromString(str string) (Query, error) {
	switch strings.ToLower(str) {
	case "catalog":
		return CatalogQuery, nil
	case "closingrates":
		return ClosingRatesQuery, nil
	case "snapshot":
		return SnapshotQuery, nil
	}

	return "", fmt.Errorf("value %s is not valid Query", str)
}

func (q *Query) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return err
	}

	query, err := ConvertToQueryFromString(str)

	if err != nil {
		return err
	}

	*q = query

	return nil
}

func (q Query) MarshalYAML() (interface{}, error) {
	return string(q), nil
}
