package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		hashtags []string
		mentions []string
	}{
		{
			name:     "basic extraction",
			text:     "loving the #encore tonight with @alice",
			hashtags: []string{"encore"},
			mentions: []string{"alice"},
		},
		{
			name:     "case folds to lower",
			text:     "big #GameDay shoutout to @Bob_99",
			hashtags: []string{"gameday"},
			mentions: []string{"bob_99"},
		},
		{
			name:     "duplicates collapse",
			text:     "#tour #TOUR #Tour",
			hashtags: []string{"tour"},
			mentions: []string{},
		},
		{
			name:     "word character before marker blocks match",
			text:     "visit example#notatag and email me@notamention",
			hashtags: []string{},
			mentions: []string{},
		},
		{
			name:     "punctuation before marker allows match",
			text:     "(#frontrow) and ,@carol!",
			hashtags: []string{"frontrow"},
			mentions: []string{"carol"},
		},
		{
			name:     "start of string counts as boundary",
			text:     "#first words",
			hashtags: []string{"first"},
			mentions: []string{},
		},
		{
			name:     "long token clips at thirty characters",
			text:     "#" + strings.Repeat("a", 35),
			hashtags: []string{strings.Repeat("a", 30)},
			mentions: []string{},
		},
		{
			name:     "empty marker matches nothing",
			text:     "just a # and an @ alone",
			hashtags: []string{},
			mentions: []string{},
		},
		{
			name:     "multiple sorted",
			text:     "#zebra #apple @zoe @adam",
			hashtags: []string{"apple", "zebra"},
			mentions: []string{"adam", "zoe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hashtags, mentions := ExtractTags(tt.text)
			assert.Equal(t, tt.hashtags, hashtags)
			assert.Equal(t, tt.mentions, mentions)
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "hel", Truncate("hello", 3))
	assert.Equal(t, "", Truncate("", 5))

	// Runes, not bytes: multi-byte characters must not be split.
	assert.Equal(t, "héllo", Truncate("héllo", 5))
	assert.Equal(t, "hé", Truncate("héllo", 2))
	assert.Equal(t, "日本", Truncate("日本語のテキスト", 2))
}
