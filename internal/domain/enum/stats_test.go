package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatsMode(t *testing.T) {
	assert.Equal(t, StatsModeParts, ParseStatsMode("parts"))
	assert.Equal(t, StatsModeParts, ParseStatsMode("PARTS"))
	assert.Equal(t, StatsModeParts, ParseStatsMode(" Parts "))

	for _, in := range []string{"", "sales", "part", "partss", "vat"} {
		assert.Equal(t, StatsModeSales, ParseStatsMode(in), in)
	}
}

func TestParseStatsDimension(t *testing.T) {
	assert.Equal(t, StatsDimensionUser, ParseStatsDimension("user"))
	assert.Equal(t, StatsDimensionUser, ParseStatsDimension("User"))

	for _, in := range []string{"", "users", "department", "dept", "staff"} {
		assert.Equal(t, StatsDimensionDepartment, ParseStatsDimension(in), in)
	}
}

func TestSelectStatsSource(t *testing.T) {
	tests := []struct {
		mode      string
		dimension string
		want      StatsSource
	}{
		{"sales", "department", StatsSourceSalesByDepartment},
		{"sales", "user", StatsSourceSalesByUser},
		{"parts", "department", StatsSourcePartsByDepartment},
		{"parts", "user", StatsSourcePartsByUser},
		{"garbage", "garbage", StatsSourceSalesByDepartment},
		{"PARTS", "USER", StatsSourcePartsByUser},
	}

	for _, tt := range tests {
		src := SelectStatsSource(ParseStatsMode(tt.mode), ParseStatsDimension(tt.dimension))
		assert.Equal(t, tt.want, src, "%s/%s", tt.mode, tt.dimension)
		assert.Equal(t, ParseStatsMode(tt.mode), src.Mode())
		assert.Equal(t, ParseStatsDimension(tt.dimension), src.Dimension())
	}
}

func TestStatsSourceMarshalJSON(t *testing.T) {
	b, err := StatsSourcePartsByUser.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"parts_by_user"`, string(b))
}
