package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeader = "Name,Platform,Year_of_Release,Genre,Publisher,NA_Sales,EU_Sales,JP_Sales,Other_Sales,Global_Sales,Critic_Score\n"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "games.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeCSV(t, csvHeader+
		`Wii Sports,Wii,2006,Sports,Nintendo,41.36,28.96,3.77,8.45,82.53,76
"Pokemon Red/Pokemon Blue",GB,1996,Role-Playing,Nintendo,11.27,8.89,10.22,1,31.37,
"Tom Clancy's Rainbow Six, Vegas",X360,2006,Shooter,Ubisoft, 1.6 ,0.65,0.01,0.2,2.46,86
`)

	store, err := LoadFile(path, LoadOptions{})
	require.NoError(t, err)
	require.Equal(t, 3, store.Len())

	first := store.Record(0)
	assert.Equal(t, "Wii Sports", first.Title)
	assert.Equal(t, "Sports", first.Genre)
	assert.Equal(t, 41.36, first.NA)
	assert.Equal(t, 82.53, first.Global)

	third := store.Record(2)
	assert.Equal(t, "Tom Clancy's Rainbow Six, Vegas", third.Title)
	assert.Equal(t, 1.6, third.NA)

	// Dictionary Checks
	assert.Len(t, store.TitleDict, 3)
	assert.Equal(t, []string{"Sports", "Role-Playing", "Shooter"}, store.GenreDict)
}

func TestLoadSkipsBOM(t *testing.T) {
	store, err := Load(strings.NewReader("\xEF\xBB\xBF"+csvHeader+"Tetris,GB,1989,Puzzle,Nintendo,23.2,2.26,4.22,0.58,30.26,\n"), LoadOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
	assert.Equal(t, "Puzzle", store.Record(0).Genre)
}

func TestLoadHeaderOnly(t *testing.T) {
	store, err := Load(strings.NewReader(csvHeader), LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty input", body: ""},
		{name: "missing column", body: "Name,Genre,NA_Sales,EU_Sales,JP_Sales,Other_Sales\nA,Action,1,1,1,1\n"},
		{name: "wrong case header", body: "name,Genre,NA_Sales,EU_Sales,JP_Sales,Other_Sales,Global_Sales\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.body), LoadOptions{})
			var le *LoadError
			assert.True(t, errors.As(err, &le), "got %v", err)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")
	_, err := LoadFile(path, LoadOptions{})

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, path, le.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMissingColumnNamesPath(t *testing.T) {
	path := writeCSV(t, "Name,Genre\nA,Action\n")
	_, err := LoadFile(path, LoadOptions{})

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, path, le.Path)
	assert.Contains(t, err.Error(), "NA_Sales")
}

func TestLoadMalformedRow(t *testing.T) {
	body := csvHeader +
		"Tetris,GB,1989,Puzzle,Nintendo,23.2,2.26,4.22,0.58,30.26,\n" +
		"Bad,GB,1990,Puzzle,Nintendo,abc,0,0,0,1,\n" +
		"Neg,GB,1990,Puzzle,Nintendo,1,-0.5,0,0,1,\n" +
		"Short,GB\n"

	t.Run("fail fast", func(t *testing.T) {
		_, err := Load(strings.NewReader(body), LoadOptions{})
		var me *MalformedRowError
		require.ErrorAs(t, err, &me)
		assert.Equal(t, 1, me.Row)
		assert.Equal(t, 3, me.Line)
		assert.Equal(t, ColNA, me.Column)
		assert.Equal(t, "abc", me.Value)
	})

	t.Run("skip", func(t *testing.T) {
		store, err := Load(strings.NewReader(body), LoadOptions{SkipMalformed: true})
		require.NoError(t, err)
		require.Equal(t, 1, store.Len())
		assert.Equal(t, "Tetris", store.Record(0).Title)
	})
}

func TestLoadNegativeValue(t *testing.T) {
	_, err := Load(strings.NewReader(csvHeader+"Neg,GB,1990,Puzzle,Nintendo,1,-0.5,0,0,1,\n"), LoadOptions{})

	var me *MalformedRowError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, ColEU, me.Column)
	assert.ErrorIs(t, err, errNegative)
}

func TestParseSales(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "123.45", want: 123.45},
		{in: " 0.01 ", want: 0.01},
		{in: "0", want: 0},
		{in: "1e1", want: 10},
		{in: "", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "NaN", wantErr: true},
		{in: "Inf", wantErr: true},
		{in: "1,5", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseSales(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "parseSales(%q)", tt.in)
			continue
		}
		assert.NoError(t, err, "parseSales(%q)", tt.in)
		assert.Equal(t, tt.want, got, "parseSales(%q)", tt.in)
	}
}
