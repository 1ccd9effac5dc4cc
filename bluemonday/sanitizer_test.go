package bluemonday_test

import (
	"testing"

	"github.com/fwojciec/newsdesk/bluemonday"
	"github.com/stretchr/testify/assert"
)

func TestSanitizer_Sanitize(t *testing.T) {
	t.Parallel()

	t.Run("strips tags from feed snippets", func(t *testing.T) {
		t.Parallel()

		got := bluemonday.NewSanitizer().Sanitize(`<p>The council <b>approved</b> the budget.</p><img src="x.jpg">`)

		assert.Equal(t, "The council approved the budget.", got)
	})

	t.Run("drops scripts entirely", func(t *testing.T) {
		t.Parallel()

		got := bluemonday.NewSanitizer().Sanitize(`Hello<script>alert("x")</script> world`)

		assert.Equal(t, "Hello world", got)
	})

	t.Run("decodes entities", func(t *testing.T) {
		t.Parallel()

		got := bluemonday.NewSanitizer().Sanitize(`AT&amp;T &quot;deal&quot; & more`)

		assert.Equal(t, `AT&T "deal" & more`, got)
	})

	t.Run("returns empty string for empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, bluemonday.NewSanitizer().Sanitize(""))
	})
}
