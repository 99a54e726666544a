package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDList(t *testing.T) {
	ids, err := ParseIDList("1, 2,,3")
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3}, ids)

	ids, err = ParseIDList("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = ParseIDList("1,abc")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestGetIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := map[string]struct {
		value   string
		want    uint
		wantErr bool
	}{
		"valid":    {value: "12", want: 12},
		"zero":     {value: "0", wantErr: true},
		"negative": {value: "-1", wantErr: true},
		"text":     {value: "abc", wantErr: true},
		"empty":    {value: "", wantErr: true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			ctx.Params = gin.Params{{Key: "id", Value: tc.value}}

			got, err := GetIDParam(ctx, "id")
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestQueryFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for query, want := range map[string]bool{"?assigned_only=1": true, "?assigned_only=true": true, "?assigned_only=0": false, "": false} {
		ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
		ctx.Request = httptest.NewRequest("GET", "/api/tags"+query, nil)
		assert.Equal(t, want, QueryFlag(ctx, "assigned_only"), query)
	}
}
