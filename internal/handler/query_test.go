package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/product-catalog-service/internal/repository"
)

func TestParseSort(t *testing.T) {
	cases := []struct {
		in      string
		key     string
		dir     repository.SortDirection
		wantErr bool
	}{
		{in: "name", key: "name"},
		{in: "name:desc", key: "name", dir: repository.SortDesc},
		{in: " unit_price , ASC ", key: "unit_price", dir: repository.SortAsc},
		{in: "", wantErr: true},
		{in: ":desc", wantErr: true},
		{in: "name:up", wantErr: true},
		{in: "a:b:c", wantErr: true},
	}
	for _, tc := range cases {
		key, dir, err := ParseSort(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.key, key, tc.in)
		assert.Equal(t, tc.dir, dir, tc.in)
	}
}
