package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRun_ProcessesScript(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	output := filepath.Join(dir, "output.txt")

	script := `register_customer alice
register_freelancer bob paint 100 70 60 50 85 90
employ_freelancer alice bob
complete_and_rate bob 5
query_customer alice
`
	if err := os.WriteFile(input, []byte(script), 0600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if code := run([]string{input, output}); code != 0 {
		t.Fatalf("run returned %d, want 0", code)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	want := `registered customer alice
registered freelancer bob
alice employed bob for paint
bob completed job for alice with rating 5
alice: total spent: $100, loyalty tier: BRONZE, blacklisted freelancer count: 0, total employment count: 1
`
	if string(got) != want {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRun_UsageError(t *testing.T) {
	if code := run(nil); code != 1 {
		t.Errorf("run with no args returned %d, want 1", code)
	}
	if code := run([]string{"only-input"}); code != 1 {
		t.Errorf("run with one arg returned %d, want 1", code)
	}
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	if code := run([]string{filepath.Join(dir, "missing.txt"), filepath.Join(dir, "out.txt")}); code != 1 {
		t.Errorf("run with missing input returned %d, want 1", code)
	}
}
