package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{url: "", want: "static"},
		{url: "builtin", want: "static"},
		{url: "https://harukit.com", want: "http"},
		{url: "http://localhost:3000", want: "http"},
		{url: "ftp://harukit.com", wantErr: true},
		{url: "harukit.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			c, err := New(Options{URL: tt.url, CacheDir: t.TempDir(), Cache: true, TTL: 60})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			switch tt.want {
			case "static":
				assert.IsType(t, &StaticClient{}, c)
			case "http":
				hc, ok := c.(*HTTPClient)
				require.True(t, ok)
				assert.NotNil(t, hc.cache)
			}
		})
	}
}

func TestNewWithoutCache(t *testing.T) {
	c, err := New(Options{URL: "https://harukit.com", CacheDir: t.TempDir(), Cache: false})
	require.NoError(t, err)
	assert.Nil(t, c.(*HTTPClient).cache)
}

func TestSuggest(t *testing.T) {
	client, err := NewStaticClient(testRecords())
	require.NoError(t, err)

	got := Suggest(context.Background(), client, "buton")
	require.NotEmpty(t, got)
	assert.Equal(t, "button", got[0])

	assert.Empty(t, Suggest(context.Background(), client, "zzzz"))
}

func TestListAll(t *testing.T) {
	var records []ComponentRecord
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		records = append(records, ComponentRecord{Name: name, Version: "1.0.0"})
	}
	client, err := NewStaticClient(records)
	require.NoError(t, err)

	all, err := ListAll(context.Background(), client)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestMatches(t *testing.T) {
	r := &ComponentRecord{Name: "date-picker", Description: "Pick a date", Category: "form", Tags: []string{"Calendar"}}

	assert.True(t, Matches(r, "PICKER"))
	assert.True(t, Matches(r, "pick a"))
	assert.True(t, Matches(r, "calendar"))
	assert.True(t, Matches(r, "FORM"))
	assert.False(t, Matches(r, "table"))
}
