package payroll

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type MoneyListKind int

const (
	MoneyListEmpty MoneyListKind = iota
	MoneyListRawString
	MoneyListRawArray
	MoneyListRawObject
)

// MoneyList is an allowance/deduction field exactly as the backend sent it.
// It is classified once at decode time and resolved only through Normalize.
type MoneyList struct {
	kind MoneyListKind
	raw  json.RawMessage
	text string
}

type MoneyItem struct {
	Label  string
	Amount float64
	// Invalid marks an amount that did not coerce to a finite number.
	// Amount is 0 in that case.
	Invalid bool
}

type MoneyBreakdown struct {
	Items     []MoneyItem
	Total     float64
	Malformed bool
}

func ParseMoneyList(raw json.RawMessage) MoneyList {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return MoneyList{kind: MoneyListEmpty}
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return MoneyList{kind: MoneyListEmpty}
		}
		return MoneyList{kind: MoneyListRawString, text: s}
	case '[':
		return MoneyList{kind: MoneyListRawArray, raw: append(json.RawMessage(nil), trimmed...)}
	case '{':
		return MoneyList{kind: MoneyListRawObject, raw: append(json.RawMessage(nil), trimmed...)}
	default:
		return MoneyList{kind: MoneyListEmpty}
	}
}

// MoneyListFromString builds the string-encoded variant directly.
func MoneyListFromString(s string) MoneyList {
	return MoneyList{kind: MoneyListRawString, text: s}
}

func (m MoneyList) Kind() MoneyListKind {
	return m.kind
}

func (m MoneyList) IsEmpty() bool {
	return m.kind == MoneyListEmpty
}

func (m MoneyList) Normalize() MoneyBreakdown {
	switch m.kind {
	case MoneyListRawString:
		return normalizeString(m.text)
	case MoneyListRawArray:
		return summarize(normalizeArray(m.raw), false)
	case MoneyListRawObject:
		items, ok := normalizeObject(m.raw)
		return summarize(items, !ok)
	default:
		return MoneyBreakdown{Items: []MoneyItem{}}
	}
}

func normalizeString(text string) MoneyBreakdown {
	text = strings.TrimSpace(text)
	if text == "" {
		return MoneyBreakdown{Items: []MoneyItem{}}
	}
	if !json.Valid([]byte(text)) {
		return MoneyBreakdown{Items: []MoneyItem{}, Malformed: true}
	}

	// One level of decoding only; a string that decodes to another string
	// carries no items.
	inner := ParseMoneyList(json.RawMessage(text))
	if inner.kind == MoneyListRawString {
		return MoneyBreakdown{Items: []MoneyItem{}}
	}
	return inner.Normalize()
}

func normalizeArray(raw json.RawMessage) []MoneyItem {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil
	}

	items := make([]MoneyItem, 0, len(elements))
	for _, el := range elements {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(el, &fields); err != nil || fields == nil {
			items = append(items, MoneyItem{Label: "-"})
			continue
		}

		label := "-"
		for _, key := range []string{"label", "name", "code"} {
			if v, ok := fields[key]; ok && !isNull(v) {
				label = jsString(v)
				break
			}
		}

		items = append(items, newMoneyItem(label, fields["amount"]))
	}
	return items
}

// normalizeObject keeps the key order of the payload, which a map decode
// would lose.
func normalizeObject(raw json.RawMessage) ([]MoneyItem, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, false
	}

	items := make([]MoneyItem, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return items, false
		}
		key, ok := tok.(string)
		if !ok {
			return items, false
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return items, false
		}
		items = append(items, newMoneyItem(key, value))
	}

	if _, err := dec.Token(); err != nil && err != io.EOF {
		return items, false
	}
	return items, true
}

func newMoneyItem(label string, rawAmount json.RawMessage) MoneyItem {
	amount := jsNumber(rawAmount)
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return MoneyItem{Label: label, Invalid: true}
	}
	return MoneyItem{Label: label, Amount: amount}
}

func summarize(items []MoneyItem, malformed bool) MoneyBreakdown {
	if items == nil {
		items = []MoneyItem{}
	}

	total := decimal.Zero
	for _, it := range items {
		if it.Invalid {
			continue
		}
		total = total.Add(decimal.NewFromFloat(it.Amount))
	}

	return MoneyBreakdown{
		Items:     items,
		Total:     total.InexactFloat64(),
		Malformed: malformed,
	}
}

func isNull(v json.RawMessage) bool {
	t := bytes.TrimSpace(v)
	return len(t) == 0 || string(t) == "null"
}

// jsNumber mirrors Number(v ?? 0): missing and null are 0, booleans are 1/0,
// strings are parsed (blank is 0), anything else is NaN.
func jsNumber(v json.RawMessage) float64 {
	t := bytes.TrimSpace(v)
	if len(t) == 0 || string(t) == "null" {
		return 0
	}

	switch t[0] {
	case '"':
		var s string
		if err := json.Unmarshal(t, &s); err != nil {
			return math.NaN()
		}
		return jsStringToNumber(s)
	case 't':
		return 1
	case 'f':
		return 0
	case '[', '{':
		return math.NaN()
	default:
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	}
}

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// jsStringToNumber follows StringToNumber: blank is 0, unsigned 0x/0o/0b
// integer literals, signed Infinity, and plain decimal literals.
func jsStringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			digits := s[2:]
			if digits[0] == '+' || digits[0] == '-' {
				return math.NaN()
			}
			n, ok := new(big.Int).SetString(digits, base)
			if !ok {
				return math.NaN()
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f
		}
	}

	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	// ErrRange still yields ±Inf, same as the JS result.
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func jsString(v json.RawMessage) string {
	t := bytes.TrimSpace(v)
	if len(t) > 0 && t[0] == '"' {
		var s string
		if err := json.Unmarshal(t, &s); err == nil {
			return s
		}
	}
	return string(t)
}
