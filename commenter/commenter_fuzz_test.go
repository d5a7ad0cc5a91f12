package commenter

import (
	"context"
	"testing"
)

func FuzzComment(f *testing.F) {
	seeds := []string{
		"IO.puts(\"hello\")\n",
		"  IO.puts(\n    \"a\"\n  )\n",
		"IO.puts(\"\"\"\ntext\n\"\"\")\n",
		"x -> IO.puts(\"x\")\n",
		"a |> IO.puts(\n  b\n)\n",
		"IO.puts(\n",
		"IO.puts \"\"\"\n",
		"# IO.puts(1)\r\nIO.puts(2)\r\n",
		"\n\n\nIO.puts((((",
		"f(IO.puts(g(1)))",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed), false)
		f.Add([]byte(seed), true)
	}

	f.Fuzz(func(t *testing.T, data []byte, contains bool) {
		policy := PolicyStrict
		if contains {
			policy = PolicyContains
		}
		c := New(WithPolicy(policy))

		doc := ParseDocument(data)
		if got := string(doc.Bytes()); got != string(data) {
			t.Fatalf("document round trip changed input: %q -> %q", data, got)
		}

		first, err := c.Comment(context.Background(), doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(first.Document) != len(doc) {
			t.Fatalf("line count changed: %d -> %d\nInput: %q", len(doc), len(first.Document), data)
		}
		if !first.Modified && first.Document.String() != string(data) {
			t.Fatalf("unmodified result differs from input\nInput: %q", data)
		}

		second, err := c.Comment(context.Background(), ParseDocument(first.Document.Bytes()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.Modified {
			t.Fatalf("second pass changed output\nInput:  %q\nFirst:  %q\nSecond: %q",
				data, first.Document.String(), second.Document.String())
		}
	})
}
