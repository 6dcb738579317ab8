package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellRoundTripText(t *testing.T) {
	original := TextValue("I want to automate our reporting")

	decoded := DecodeCell(original.EncodeCell())

	assert.Equal(t, ValueText, decoded.Kind())
	assert.Equal(t, "I want to automate our reporting", decoded.Text())
}

func TestCellRoundTripNumber(t *testing.T) {
	original := NumberValue(4)

	decoded := DecodeCell(original.EncodeCell())

	assert.Equal(t, ValueNumber, decoded.Kind())
	assert.InDelta(t, 4.0, decoded.Number(), 1e-9)
}

func TestCellRoundTripMultiChoice(t *testing.T) {
	original := MultiChoiceValue([]string{"a", "b"})

	decoded := DecodeCell(original.EncodeCell())

	assert.Equal(t, ValueMultiChoice, decoded.Kind())
	assert.Equal(t, []string{"a", "b"}, decoded.Options())
}

// A numeric-looking choice comes back as a number. The decode priority is
// fixed: numeric wins over literal text.
func TestDecodeNumericStringIsAmbiguous(t *testing.T) {
	decoded := DecodeCell(ChoiceValue("42").EncodeCell())

	assert.Equal(t, ValueNumber, decoded.Kind())
	assert.InDelta(t, 42.0, decoded.Number(), 1e-9)
}

func TestDecodeCellFallsThroughToText(t *testing.T) {
	cases := map[string]string{
		"plain":         "Strategy and leadership",
		"empty":         "",
		"whitespace":    "   ",
		"broken array":  `["a",`,
		"mixed numeric": "2 out of 5",
		"infinity":      "Inf",
	}

	for name, cell := range cases {
		t.Run(name, func(t *testing.T) {
			decoded := DecodeCell(cell)
			assert.Equal(t, ValueText, decoded.Kind())
			assert.Equal(t, cell, decoded.Text())
		})
	}
}

func TestDecodeCellPriorities(t *testing.T) {
	// A valid JSON array wins over everything.
	decoded := DecodeCell(`["42"]`)
	assert.Equal(t, ValueMultiChoice, decoded.Kind())

	// A finite number wins over literal text, whitespace tolerated.
	decoded = DecodeCell("  3.5 ")
	assert.Equal(t, ValueNumber, decoded.Kind())
	assert.InDelta(t, 3.5, decoded.Number(), 1e-9)
}

func TestAnswerValueJSONWireForm(t *testing.T) {
	payload := []byte(`[
		{"questionId": "ai-familiarity", "value": 3},
		{"questionId": "role", "value": "CTO"},
		{"questionId": "ai-tools-used", "value": ["ChatGPT", "Copilot"]}
	]`)

	var answers []Answer
	require.NoError(t, json.Unmarshal(payload, &answers))
	require.Len(t, answers, 3)

	assert.Equal(t, ValueNumber, answers[0].Value.Kind())
	assert.Equal(t, ValueText, answers[1].Value.Kind())
	assert.Equal(t, "CTO", answers[1].Value.Text())
	assert.Equal(t, []string{"ChatGPT", "Copilot"}, answers[2].Value.Options())

	out, err := json.Marshal(answers)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"questionId": "ai-familiarity", "value": 3},
		{"questionId": "role", "value": "CTO"},
		{"questionId": "ai-tools-used", "value": ["ChatGPT", "Copilot"]}
	]`, string(out))
}

func TestSetAnswerLastWriteWins(t *testing.T) {
	var response SurveyResponse
	response.SetAnswer("ai-familiarity", NumberValue(2))
	response.SetAnswer("role", TextValue("Founder"))
	response.SetAnswer("ai-familiarity", NumberValue(4))

	require.Len(t, response.Answers, 2)
	answer, ok := response.AnswerFor("ai-familiarity")
	require.True(t, ok)
	assert.InDelta(t, 4.0, answer.Value.Number(), 1e-9)
}

func TestDisplayString(t *testing.T) {
	assert.Equal(t, "a; b", MultiChoiceValue([]string{"a", "b"}).DisplayString())
	assert.Equal(t, "4", NumberValue(4).DisplayString())
	assert.Equal(t, "3.5", NumberValue(3.5).DisplayString())
	assert.Equal(t, "free text", TextValue("free text").DisplayString())
}
