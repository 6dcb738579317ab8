package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type ValueKind int

const (
	ValueText ValueKind = iota
	ValueChoice
	ValueMultiChoice
	ValueNumber
)

// AnswerValue is the tagged union of everything a participant can submit for
// a single question: free text, a selected option, a set of selected options,
// or a numeric rating.
type AnswerValue struct {
	kind    ValueKind
	text    string
	options []string
	number  float64
}

func TextValue(s string) AnswerValue {
	return AnswerValue{kind: ValueText, text: s}
}

func ChoiceValue(s string) AnswerValue {
	return AnswerValue{kind: ValueChoice, text: s}
}

func MultiChoiceValue(options []string) AnswerValue {
	return AnswerValue{kind: ValueMultiChoice, options: options}
}

func NumberValue(v float64) AnswerValue {
	return AnswerValue{kind: ValueNumber, number: v}
}

func (v AnswerValue) Kind() ValueKind { return v.kind }

// Text returns the literal string for Text and Choice values.
func (v AnswerValue) Text() string { return v.text }

// Options returns the selected options for MultiChoice values.
func (v AnswerValue) Options() []string { return v.options }

// Number returns the numeric value for Number values.
func (v AnswerValue) Number() float64 { return v.number }

// DisplayString renders the value the way exports and the dashboard show it:
// multi-choice members joined with "; ", numbers in their shortest decimal
// form, everything else verbatim.
func (v AnswerValue) DisplayString() string {
	switch v.kind {
	case ValueMultiChoice:
		return strings.Join(v.options, "; ")
	case ValueNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	default:
		return v.text
	}
}

// EncodeCell serializes the value into the single text column the answer
// store provides. The format is shared with previously persisted data and
// must not change: multi-choice as a JSON string array, numbers as plain
// decimal strings, text and choices verbatim.
func (v AnswerValue) EncodeCell() string {
	switch v.kind {
	case ValueMultiChoice:
		b, err := json.Marshal(v.options)
		if err != nil {
			// []string cannot fail to marshal; keep the compiler honest.
			return "[]"
		}
		return string(b)
	case ValueNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	default:
		return v.text
	}
}

// DecodeCell is the inverse of EncodeCell. The stored cell carries no type
// tag, so decoding is a heuristic with a fixed priority: a valid JSON string
// array wins, then a finite number, then the literal text. Decoding is total.
//
// The priority makes two inputs lossy on round-trip: a choice that happens to
// be numeric-looking ("42") comes back as a Number, and free text that spells
// a JSON string array comes back as a MultiChoice. Both are inherited from
// the stored data format and accepted.
func DecodeCell(cell string) AnswerValue {
	trimmed := strings.TrimSpace(cell)

	if strings.HasPrefix(trimmed, "[") {
		var options []string
		if err := json.Unmarshal([]byte(trimmed), &options); err == nil {
			return MultiChoiceValue(options)
		}
	}

	if trimmed != "" {
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
			return NumberValue(n)
		}
	}

	return TextValue(cell)
}

// MarshalJSON emits the dashboard wire form: a bare string, a string array,
// or a number, exactly as the submitting client sent it.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueMultiChoice:
		return json.Marshal(v.options)
	case ValueNumber:
		return json.Marshal(v.number)
	default:
		return json.Marshal(v.text)
	}
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(trimmed, "["):
		var options []string
		if err := json.Unmarshal(data, &options); err != nil {
			return fmt.Errorf("answer value: invalid option array: %w", err)
		}
		*v = MultiChoiceValue(options)
	case strings.HasPrefix(trimmed, "\""):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("answer value: invalid string: %w", err)
		}
		*v = TextValue(s)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("answer value: expected string, array or number, got %s", trimmed)
		}
		*v = NumberValue(n)
	}
	return nil
}

// Answer pairs a question id with the submitted value. The question id is an
// opaque grouping key; it is never checked against a survey schema here.
type Answer struct {
	QuestionID string      `json:"questionId" validate:"required"`
	Value      AnswerValue `json:"value"`
}
