package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordText(t *testing.T) {
	t.Run("title and description", func(t *testing.T) {
		rec := Record{"title": "AI breakthrough", "description": "Researchers announced a new model."}
		assert.Equal(t, "AI breakthrough Researchers announced a new model.", rec.Text())
	})

	t.Run("missing fields yield empty text", func(t *testing.T) {
		assert.Equal(t, "", Record{}.Text())
		assert.Equal(t, "", Record{"title": "", "description": "   "}.Text())
	})

	t.Run("non-string fields are ignored", func(t *testing.T) {
		rec := Record{"title": 42, "description": "body"}
		assert.Equal(t, "body", rec.Text())
	})
}

func TestRecordContentID(t *testing.T) {
	a := Record{"title": "one", "description": "two"}
	b := Record{"title": "one", "description": "two", "url": "https://example.com"}
	c := Record{"title": "one", "description": "three"}

	// Extra fields do not affect the ID; content changes do.
	assert.Equal(t, a.ContentID(), b.ContentID())
	assert.NotEqual(t, a.ContentID(), c.ContentID())

	// "one|twothree" must not collide with "onetwo|three".
	d := Record{"title": "onetwo", "description": "three"}
	e := Record{"title": "one", "description": "twothree"}
	assert.NotEqual(t, d.ContentID(), e.ContentID())
}

func TestRecordStrings(t *testing.T) {
	t.Run("decoded JSON array", func(t *testing.T) {
		rec := Record{"keywords": []any{"a", "b", 3, "c"}}
		assert.Equal(t, []string{"a", "b", "c"}, rec.Strings("keywords"))
	})

	t.Run("native string slice", func(t *testing.T) {
		rec := Record{"keywords": []string{"x", "y"}}
		assert.Equal(t, []string{"x", "y"}, rec.Strings("keywords"))
	})

	t.Run("absent field", func(t *testing.T) {
		assert.Nil(t, Record{}.Strings("keywords"))
	})
}

func TestDecodeLine(t *testing.T) {
	t.Run("valid object", func(t *testing.T) {
		rec, err := DecodeLine([]byte(`{"title":"t","description":"d","extra":1}`))
		require.NoError(t, err)
		assert.Equal(t, "t", rec.Title())
		assert.Equal(t, "d", rec.Description())
		assert.Equal(t, float64(1), rec["extra"])
	})

	t.Run("blank line", func(t *testing.T) {
		_, err := DecodeLine([]byte("   "))
		assert.ErrorIs(t, err, ErrMalformedLine)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := DecodeLine([]byte(`{"title":`))
		assert.ErrorIs(t, err, ErrMalformedLine)
	})
}

func TestEncodeLineRoundTrip(t *testing.T) {
	rec := Record{"title": "t", "keywords": []string{"a"}, "n": float64(2)}
	data, err := EncodeLine(rec)
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), data[len(data)-1])

	back, err := DecodeLine(data)
	require.NoError(t, err)
	assert.Equal(t, "t", back.Title())
	assert.Equal(t, []string{"a"}, back.Strings("keywords"))
	assert.Equal(t, float64(2), back["n"])
}
