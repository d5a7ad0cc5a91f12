package commenter

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func generateSource(functions int) []byte {
	var buf strings.Builder
	buf.WriteString("defmodule Bench do\n")
	for i := 0; i < functions; i++ {
		fmt.Fprintf(&buf, "  def f%d(x) do\n", i)
		switch i % 4 {
		case 0:
			fmt.Fprintf(&buf, "    IO.puts(\"f%d\")\n", i)
		case 1:
			buf.WriteString("    IO.puts(\n      \"#{inspect(x)}\"\n    )\n")
		case 2:
			buf.WriteString("    IO.puts(\"\"\"\n    value: #{x}\n    \"\"\")\n")
		case 3:
			buf.WriteString("    case x do\n      nil -> IO.puts(\"nil\")\n      _ -> :ok\n    end\n")
		}
		buf.WriteString("    x\n  end\n\n")
	}
	buf.WriteString("end\n")
	return []byte(buf.String())
}

// BenchmarkComment benchmarks the commenter with various file sizes
func BenchmarkComment(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		data := generateSource(size)

		for _, policy := range []Policy{PolicyStrict, PolicyContains} {
			b.Run(fmt.Sprintf("%s/%d", policy, size), func(b *testing.B) {
				c := New(WithPolicy(policy))
				b.SetBytes(int64(len(data)))
				b.ReportAllocs()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					if _, err := c.Comment(context.Background(), ParseDocument(data)); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkContains(b *testing.B) {
	data := generateSource(1000)
	c := New()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = c.Contains(data)
	}
}
