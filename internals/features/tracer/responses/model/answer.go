package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AnswerKind adalah diskriminan AnswerValue.
type AnswerKind uint8

const (
	AnswerEmpty AnswerKind = iota
	AnswerText
	AnswerChoices
	AnswerNumber
)

func (k AnswerKind) String() string {
	switch k {
	case AnswerText:
		return "text"
	case AnswerChoices:
		return "choices"
	case AnswerNumber:
		return "number"
	default:
		return "empty"
	}
}

// AnswerValue menyimpan tepat satu dari Text, Choices, atau Number sesuai Kind.
// Bentuk JSON-nya tetap string | []string | number.
type AnswerValue struct {
	Kind    AnswerKind
	Text    string
	Choices []string
	Number  float64
}

func TextAnswer(s string) AnswerValue { return AnswerValue{Kind: AnswerText, Text: s} }
func ChoicesAnswer(c ...string) AnswerValue { return AnswerValue{Kind: AnswerChoices, Choices: c} }
func NumberAnswer(n float64) AnswerValue { return AnswerValue{Kind: AnswerNumber, Number: n} }

// IsBlank true untuk jawaban kosong: null, "", [] atau string berisi spasi saja.
func (v AnswerValue) IsBlank() bool {
	switch v.Kind {
	case AnswerText:
		return strings.TrimSpace(v.Text) == ""
	case AnswerChoices:
		return len(v.Choices) == 0
	case AnswerNumber:
		return false
	default:
		return true
	}
}

// Strings merender jawaban sebagai daftar string (dipakai export & agregasi teks).
func (v AnswerValue) Strings() []string {
	switch v.Kind {
	case AnswerText:
		return []string{v.Text}
	case AnswerChoices:
		return append([]string(nil), v.Choices...)
	case AnswerNumber:
		return []string{strconv.FormatFloat(v.Number, 'f', -1, 64)}
	default:
		return nil
	}
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case AnswerText:
		return json.Marshal(v.Text)
	case AnswerChoices:
		if v.Choices == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Choices)
	case AnswerNumber:
		if math.IsNaN(v.Number) || math.IsInf(v.Number, 0) {
			return nil, errors.New("answer: number is not finite")
		}
		return json.Marshal(v.Number)
	default:
		return []byte("null"), nil
	}
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = AnswerValue{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextAnswer(s)
	case '[':
		var cs []string
		if err := json.Unmarshal(data, &cs); err != nil {
			return fmt.Errorf("answer: array must contain strings: %w", err)
		}
		*v = ChoicesAnswer(cs...)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("answer: unsupported value %s", data)
		}
		*v = NumberAnswer(n)
	}
	return nil
}

type Answer struct {
	QuestionID string      `json:"question_id"`
	Value      AnswerValue `json:"answer"`
}
