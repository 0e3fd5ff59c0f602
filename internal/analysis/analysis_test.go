package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/datavis/pkg/clean"
	ds "github.com/wdm0006/datavis/pkg/dataset"
	"github.com/wdm0006/datavis/pkg/io/loader"
)

func TestBytes(t *testing.T) {
	c, err := clean.New(clean.Options{})
	require.NoError(t, err)
	res, err := Bytes(context.Background(), "people.csv", []byte("age,city,notes\n25,NY,\n,NY,\n35,,\n"), c)
	require.NoError(t, err)

	assert.Equal(t, []string{"age", "city", "notes"}, res.Raw.Schema().Names())
	assert.Equal(t, []string{"age", "city"}, res.Clean.Schema().Names())
	assert.Equal(t, []string{"notes"}, res.Report.Dropped)
	assert.Equal(t, ds.ColumnTypes{Numeric: []string{"age"}, Categorical: []string{"city"}}, res.Types)

	age, _ := res.Clean.ColumnByName("age")
	assert.Equal(t, int64(30), age.Value(1))
	city, _ := res.Clean.ColumnByName("city")
	assert.Equal(t, "NY", city.Value(2))
}

func TestBytesUnsupported(t *testing.T) {
	c, _ := clean.New(clean.Options{})
	_, err := Bytes(context.Background(), "photo.png", []byte{1, 2, 3}, c)
	assert.True(t, errors.Is(err, loader.ErrUnsupportedFormat))
}

func TestBytesGappyBoolIsCategorical(t *testing.T) {
	c, err := clean.New(clean.Options{})
	require.NoError(t, err)
	res, err := Bytes(context.Background(), "flags.csv", []byte("flag,age\nTrue,1\n,2\nFalse,3\nTrue,4\n"), c)
	require.NoError(t, err)

	assert.Equal(t, ds.ColumnTypes{Numeric: []string{"age"}, Categorical: []string{"flag"}}, res.Types)
	flag, _ := res.Clean.ColumnByName("flag")
	assert.Equal(t, "True", flag.Value(1))
}
