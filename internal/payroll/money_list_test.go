package payroll_test

import (
	"encoding/json"
	"testing"

	"go-hris-console/internal/payroll"

	"github.com/stretchr/testify/assert"
)

func TestMoneyList_Normalize(t *testing.T) {
	t.Run("string and parsed forms normalize the same", func(t *testing.T) {
		inputs := []string{
			`[{"label":"OT","amount":1000},{"name":"Bonus","amount":"500.50"}]`,
			`{"transport":200,"meal":"150","phone":null}`,
			`[]`,
			`{}`,
		}

		for _, in := range inputs {
			parsed := payroll.ParseMoneyList(json.RawMessage(in)).Normalize()
			encoded, _ := json.Marshal(in)
			stringified := payroll.ParseMoneyList(encoded).Normalize()

			assert.Equal(t, parsed, stringified, in)
		}
	})

	t.Run("array labels fall back label name code dash", func(t *testing.T) {
		raw := `[{"label":"A","name":"x","amount":1},{"name":"B","amount":2},{"code":"C","amount":3},{"amount":4},{"label":null,"code":"E","amount":5}]`
		got := payroll.ParseMoneyList(json.RawMessage(raw)).Normalize()

		labels := make([]string, 0, len(got.Items))
		for _, it := range got.Items {
			labels = append(labels, it.Label)
		}
		assert.Equal(t, []string{"A", "B", "C", "-", "E"}, labels)
		assert.Equal(t, 15.0, got.Total)
		assert.False(t, got.Malformed)
	})

	t.Run("object keeps insertion order", func(t *testing.T) {
		raw := `{"zeta":1,"alpha":2,"mid":3}`
		got := payroll.ParseMoneyList(json.RawMessage(raw)).Normalize()

		assert.Equal(t, []payroll.MoneyItem{
			{Label: "zeta", Amount: 1},
			{Label: "alpha", Amount: 2},
			{Label: "mid", Amount: 3},
		}, got.Items)
		assert.Equal(t, 6.0, got.Total)
	})

	t.Run("amount coercion", func(t *testing.T) {
		raw := `{"num":10,"str":"2.5","blank":"  ","null":null,"yes":true,"no":false,"word":"abc","nested":{"a":1}}`
		got := payroll.ParseMoneyList(json.RawMessage(raw)).Normalize()

		assert.Len(t, got.Items, 8)
		assert.Equal(t, 10.0, got.Items[0].Amount)
		assert.Equal(t, 2.5, got.Items[1].Amount)
		assert.Equal(t, 0.0, got.Items[2].Amount)
		assert.Equal(t, 0.0, got.Items[3].Amount)
		assert.Equal(t, 1.0, got.Items[4].Amount)
		assert.Equal(t, 0.0, got.Items[5].Amount)
		assert.True(t, got.Items[6].Invalid)
		assert.True(t, got.Items[7].Invalid)
		// non-finite amounts count as 0
		assert.Equal(t, 13.5, got.Total)
	})

	t.Run("totals do not drift", func(t *testing.T) {
		raw := `[{"label":"a","amount":0.1},{"label":"b","amount":0.2}]`
		got := payroll.ParseMoneyList(json.RawMessage(raw)).Normalize()
		assert.Equal(t, 0.3, got.Total)
	})

	t.Run("empty and garbage inputs never fail", func(t *testing.T) {
		cases := []struct {
			name      string
			raw       string
			malformed bool
		}{
			{"null", `null`, false},
			{"missing", ``, false},
			{"empty string", `""`, false},
			{"blank string", `"   "`, false},
			{"garbage string", `"not json"`, true},
			{"truncated json string", `"[{\"label\":"`, true},
			{"number", `42`, false},
			{"double encoded string", `"\"[]\""`, false},
			{"array of scalars", `[1,null,"x"]`, false},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				got := payroll.ParseMoneyList(json.RawMessage(tc.raw)).Normalize()
				assert.NotNil(t, got.Items)
				assert.Equal(t, 0.0, got.Total)
				assert.Equal(t, tc.malformed, got.Malformed)
			})
		}
	})

	t.Run("scalar array elements become dash rows", func(t *testing.T) {
		got := payroll.ParseMoneyList(json.RawMessage(`[1,null]`)).Normalize()
		assert.Equal(t, []payroll.MoneyItem{{Label: "-"}, {Label: "-"}}, got.Items)
	})
}

func TestParseMoneyList_Kind(t *testing.T) {
	assert.Equal(t, payroll.MoneyListEmpty, payroll.ParseMoneyList(nil).Kind())
	assert.Equal(t, payroll.MoneyListEmpty, payroll.ParseMoneyList(json.RawMessage(`null`)).Kind())
	assert.Equal(t, payroll.MoneyListRawString, payroll.ParseMoneyList(json.RawMessage(`"[]"`)).Kind())
	assert.Equal(t, payroll.MoneyListRawArray, payroll.ParseMoneyList(json.RawMessage(` [] `)).Kind())
	assert.Equal(t, payroll.MoneyListRawObject, payroll.ParseMoneyList(json.RawMessage(`{}`)).Kind())
	assert.Equal(t, payroll.MoneyListRawString, payroll.MoneyListFromString("{}").Kind())
}

func TestMoneyList_StringAmountCoercion(t *testing.T) {
	tests := []struct {
		amount  string
		want    float64
		invalid bool
	}{
		{amount: `"0x10"`, want: 16},
		{amount: `"0X1f"`, want: 31},
		{amount: `"0o17"`, want: 15},
		{amount: `"0b101"`, want: 5},
		{amount: `" 1e3 "`, want: 1000},
		{amount: `".5"`, want: 0.5},
		{amount: `"-12.25"`, want: -12.25},
		{amount: `"   "`, want: 0},
		{amount: `"-0x10"`, invalid: true},
		{amount: `"0x"`, invalid: true},
		{amount: `"0xZZ"`, invalid: true},
		{amount: `"inf"`, invalid: true},
		{amount: `"1_000"`, invalid: true},
		{amount: `"Infinity"`, invalid: true},
		{amount: `"12abc"`, invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			raw := json.RawMessage(`[{"label":"x","amount":` + tt.amount + `}]`)
			got := payroll.ParseMoneyList(raw).Normalize()

			assert.Len(t, got.Items, 1)
			assert.Equal(t, tt.invalid, got.Items[0].Invalid)
			if !tt.invalid {
				assert.Equal(t, tt.want, got.Items[0].Amount)
				assert.Equal(t, tt.want, got.Total)
			} else {
				assert.Equal(t, 0.0, got.Total)
			}
		})
	}
}
