package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	layout "github.com/grindlemire/go-layout"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	type tc struct {
		args    []string
		wantErr bool
		expect  []string
	}

	tests := map[string]tc{
		"small run": {
			args:   []string{"run", "--depth", "3", "--fanout", "2", "--mutations", "20", "--trees", "2"},
			expect: []string{"layoutbench: 2 trees", "Passes", "total"},
		},
		"single leaf": {
			args:   []string{"run", "--depth", "1", "--trees", "1", "--mutations", "5"},
			expect: []string{"1 trees"},
		},
		"invalid depth": {
			args:    []string{"run", "--depth", "0"},
			wantErr: true,
		},
		"missing config": {
			args:    []string{"run", "--config", "/nonexistent/layout.toml"},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, s := range tt.expect {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, []byte("recursion_limit: 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "config", "--config", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{"recursion_limit = 99", "pool_capacity = 153", "pool_reserve = 8"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunBench_Deterministic(t *testing.T) {
	opts := benchOptions{Depth: 3, Fanout: 3, Mutations: 40, Trees: 3, Seed: 7, Width: 80, Height: 24}
	logger := New(&bytes.Buffer{}, LogInfo).Logger

	first, err := runBench(context.Background(), opts, layout.DefaultConfig(), logger)
	if err != nil {
		t.Fatalf("runBench() error = %v", err)
	}
	second, err := runBench(context.Background(), opts, layout.DefaultConfig(), logger)
	if err != nil {
		t.Fatalf("runBench() error = %v", err)
	}

	for i := range first {
		a, b := first[i], second[i]
		if a.Nodes != b.Nodes || a.Stats.Measures != b.Stats.Measures || a.Stats.Arranges != b.Stats.Arranges {
			t.Errorf("tree %d differs between runs: %+v vs %+v", i, a.Stats, b.Stats)
		}
		if a.Errors != 0 || a.Stats.Faults != 0 {
			t.Errorf("tree %d reported failures: errors=%d faults=%d", i, a.Errors, a.Stats.Faults)
		}
	}
}

func TestBuildTree(t *testing.T) {
	type tc struct {
		depth, fanout int
		expected      int
	}

	tests := map[string]tc{
		"leaf only":  {depth: 1, fanout: 5, expected: 1},
		"two levels": {depth: 2, fanout: 3, expected: 4},
		"binary":     {depth: 4, fanout: 2, expected: 15},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			opts := benchOptions{Depth: tt.depth, Fanout: tt.fanout, Trees: 1, Seed: 1, Width: 10, Height: 10}
			results, err := runBench(context.Background(), opts, layout.DefaultConfig(), New(&bytes.Buffer{}, LogInfo).Logger)
			if err != nil {
				t.Fatalf("runBench() error = %v", err)
			}
			if results[0].Nodes != tt.expected {
				t.Errorf("nodes = %d, want %d", results[0].Nodes, tt.expected)
			}
		})
	}
}
