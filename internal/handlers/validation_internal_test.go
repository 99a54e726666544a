package handlers

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeFieldErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		typ  reflect.Type
		want FieldErrors
	}{
		{
			name: "nested activity values",
			body: `{"ticker":"TSLA","activities":[{"trade_date":"2024-01-30T00:00:00Z","shares":1},{"trade_date":"nope","shares":"x"}]}`,
			typ:  reflect.TypeOf(&InvestmentRequest{}),
			want: FieldErrors{
				"activities[1].trade_date": msgDatetime,
				"activities[1].shares":     msgInteger,
			},
		},
		{
			name: "list that is not a list",
			body: `{"tags":{"name":"EV"}}`,
			typ:  reflect.TypeOf(&InvestmentRequest{}),
			want: FieldErrors{"tags": msgExpectedList},
		},
		{
			name: "activity update",
			body: `{"cost_per_share":"abc","commission":[],"description":"ok"}`,
			typ:  reflect.TypeOf(&UpdateActivityRequest{}),
			want: FieldErrors{
				"cost_per_share": msgNumber,
				"commission":     msgNumber,
			},
		},
		{
			name: "not an object",
			body: `[1,2]`,
			typ:  reflect.TypeOf(&UpdateTagRequest{}),
			want: FieldErrors{bodyField: msgMalformedBody},
		},
		{
			name: "unknown keys are ignored",
			body: `{"name":"EV","user":"someone"}`,
			typ:  reflect.TypeOf(&UpdateTagRequest{}),
			want: FieldErrors{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, decodeFieldErrors([]byte(tc.body), tc.typ))
		})
	}
}
