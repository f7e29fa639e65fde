package model

import (
	"encoding/json"
	"fmt"
)

// Qualifier carries the fields shared by every qualified value.
type Qualifier struct {
	StartDate Date `json:"startDate,omitempty"`
	EndDate   Date `json:"endDate,omitempty"`
	Source    Set  `json:"source,omitempty"`
	Rank      Rank `json:"rank,omitempty"`
}

// Qualified is implemented by the three qualified-value variants. The
// variants carry no explicit tag on the wire; each is recognized by its
// required key.
type Qualified interface {
	qualifiedValue()
}

// QualifiedRelation is a relation statement qualified by time, source,
// and rank. Its required key is "resource".
type QualifiedRelation struct {
	Qualifier

	Resource *Resource `json:"resource"`
}

func (*QualifiedRelation) qualifiedValue() {}

// UnmarshalJSON enforces the variant's required key.
func (q *QualifiedRelation) UnmarshalJSON(data []byte) error {
	type alias QualifiedRelation
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Resource == nil {
		return fmt.Errorf("qualified relation is missing its resource")
	}
	*q = QualifiedRelation(a)
	return nil
}

// QualifiedDate is a date statement qualified by time, source, and
// rank. Its required key is "date".
type QualifiedDate struct {
	Qualifier

	Date  Date `json:"date"`
	Place Set  `json:"place,omitempty"`
}

func (*QualifiedDate) qualifiedValue() {}

// UnmarshalJSON enforces the variant's required key.
func (q *QualifiedDate) UnmarshalJSON(data []byte) error {
	type alias QualifiedDate
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Date == "" {
		return fmt.Errorf("qualified date is missing its date")
	}
	*q = QualifiedDate(a)
	return nil
}

// LiteralValue is a string with an optional language.
type LiteralValue struct {
	Value    string `json:"string"`
	Language string `json:"language,omitempty"`
}

// QualifiedLiteral is a literal statement qualified by time, source,
// and rank. Its required key is "literal".
type QualifiedLiteral struct {
	Qualifier

	Literal *LiteralValue `json:"literal"`
	URI     string        `json:"uri,omitempty"`
	Type    []string      `json:"type,omitempty"`
}

func (*QualifiedLiteral) qualifiedValue() {}

// UnmarshalJSON enforces the variant's required key.
func (q *QualifiedLiteral) UnmarshalJSON(data []byte) error {
	type alias QualifiedLiteral
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Literal == nil {
		return fmt.Errorf("qualified literal is missing its literal")
	}
	*q = QualifiedLiteral(a)
	return nil
}

// DecodeQualified decodes a qualified value of unknown kind by trying
// the variant shapes in order: relation, then date, then literal. An
// object presenting none of the required keys fails.
func DecodeQualified(data []byte) (Qualified, error) {
	var probe struct {
		Resource json.RawMessage `json:"resource"`
		Date     json.RawMessage `json:"date"`
		Literal  json.RawMessage `json:"literal"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	switch {
	case probe.Resource != nil:
		q := new(QualifiedRelation)
		if err := json.Unmarshal(data, q); err != nil {
			return nil, err
		}
		return q, nil
	case probe.Date != nil:
		q := new(QualifiedDate)
		if err := json.Unmarshal(data, q); err != nil {
			return nil, err
		}
		return q, nil
	case probe.Literal != nil:
		q := new(QualifiedLiteral)
		if err := json.Unmarshal(data, q); err != nil {
			return nil, err
		}
		return q, nil
	}
	return nil, fmt.Errorf("object matches no qualified value shape")
}
