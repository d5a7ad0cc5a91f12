package commenter

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestDetector(t *testing.T) {
	tests := []struct {
		line     string
		strict   Classification
		contains Classification
	}{
		{`IO.puts("a")`, Standalone, Standalone},
		{`    IO.puts("a")`, Standalone, Standalone},
		{"\tIO.puts(\n", Standalone, Standalone},
		{`IO.puts "a"`, NoMatch, Standalone},
		{`IO.puts ("a")`, NoMatch, Standalone},
		{`x -> IO.puts("x")`, NoMatch, Embedded},
		{`Enum.each(xs, &IO.puts/1)`, NoMatch, Embedded},
		{`# IO.puts("a")`, NoMatch, NoMatch},
		{`   #IO.puts("a")`, NoMatch, NoMatch},
		{`IO.inspect(x)`, NoMatch, NoMatch},
		{`IOXputs(x)`, NoMatch, NoMatch},
		{``, NoMatch, NoMatch},
	}

	strict := NewDetector(DefaultTarget, DefaultMarker, PolicyStrict)
	contains := NewDetector(DefaultTarget, DefaultMarker, PolicyContains)

	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			assert.Equal(t, test.strict, strict.Detect(test.line))
			assert.Equal(t, test.contains, contains.Detect(test.line))
		})
	}
}

func TestDetectorEmptyTarget(t *testing.T) {
	d := NewDetector("", DefaultMarker, PolicyContains)
	assert.Equal(t, NoMatch, d.Detect(`IO.puts("a")`))
}

func TestClassificationString(t *testing.T) {
	assert.Equal(t, "none", NoMatch.String())
	assert.Equal(t, "standalone", Standalone.String())
	assert.Equal(t, "embedded", Embedded.String())
}
