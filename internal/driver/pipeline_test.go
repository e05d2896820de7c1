package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"tally/internal/diag"
	"tally/internal/interp"
	"tally/internal/trace"
)

type recordSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordSink) statuses(file string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, ev := range s.events {
		if ev.File == file {
			out = append(out, string(ev.Stage)+":"+string(ev.Status))
		}
	}
	return out
}

func TestEvalSourceStages(t *testing.T) {
	tests := []struct {
		input   string
		value   string
		reached Stage
		kind    diag.Kind
	}{
		{"2 + 3 * 4", "14", StageEval, 0},
		{"5 $", "", StageTokenize, diag.IllegalCharacter},
		{"(1 + 2", "", StageParse, diag.InvalidSyntax},
		{"5 / 0", "", StageEval, diag.RuntimeError},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := EvalSource(context.Background(), "<stdin>", tt.input, Options{MaxDepth: DefaultMaxDepth})
			if res.Reached != tt.reached {
				t.Errorf("reached %s, want %s", res.Reached, tt.reached)
			}
			if tt.kind == 0 {
				if !res.Evaluated() || res.Value.String() != tt.value {
					t.Fatalf("value = %v, diag = %v", res.Value, res.Diag)
				}
				return
			}
			if res.Diag == nil || res.Diag.Kind != tt.kind {
				t.Fatalf("diag = %v, want kind %s", res.Diag, tt.kind)
			}
			// упавшая стадия не оставляет частичного результата
			switch tt.reached {
			case StageTokenize:
				if res.Tokens != nil {
					t.Error("tokens kept after lex error")
				}
			case StageParse:
				if res.Tree != nil {
					t.Error("tree kept after parse error")
				}
			}
		})
	}
}

func TestEvalUsesRootName(t *testing.T) {
	res := EvalSource(context.Background(), "calc", "var a = b", Options{RootName: "<main>"})
	if res.Diag == nil || len(res.Diag.Traceback) != 2 {
		t.Fatalf("diag = %+v", res.Diag)
	}
	if res.Diag.Traceback[0].Name != "<main>" || res.Diag.Traceback[1].Name != "a" {
		t.Errorf("frames = %+v", res.Diag.Traceback)
	}
}

func TestDepthGuardRunsBeforeParse(t *testing.T) {
	input := strings.Repeat("(", 10) + "1" + strings.Repeat(")", 10)
	res := EvalSource(context.Background(), "t", input, Options{MaxDepth: 4})
	if res.Diag == nil || res.Diag.Code != diag.SynTooDeep {
		t.Fatalf("diag = %v", res.Diag)
	}
	if res.Reached != StageParse {
		t.Errorf("reached %s", res.Reached)
	}
	if ok := EvalSource(context.Background(), "t", input, Options{}); !ok.OK() {
		t.Errorf("guard should be off by default: %v", ok.Diag)
	}
}

func TestSessionOption(t *testing.T) {
	s := interp.NewSession("<stdin>", interp.Options{})
	ctx := context.Background()
	if res := EvalSource(ctx, "<stdin>", "var n = 6", Options{Session: s}); !res.OK() {
		t.Fatal(res.Diag)
	}
	res := EvalSource(ctx, "<stdin>", "n * 7", Options{Session: s})
	if !res.OK() || res.Value.String() != "42" {
		t.Fatalf("n * 7 = %v (%v)", res.Value, res.Diag)
	}
}

func TestTimerAndEvents(t *testing.T) {
	sink := &recordSink{}
	res := EvalSource(context.Background(), "t", "1 + 1", Options{Sink: sink})
	phases := res.Timer.Phases()
	if len(phases) != 3 || phases[0].Name != "tokenize" || phases[2].Name != "eval" || phases[2].Note != "2" {
		t.Errorf("phases = %+v", phases)
	}
	want := "tokenize:working parse:working eval:working eval:done"
	if got := strings.Join(sink.statuses("t"), " "); got != want {
		t.Errorf("events = %s, want %s", got, want)
	}

	failed := &recordSink{}
	EvalSource(context.Background(), "t", "1 / 0", Options{Sink: failed})
	if got := failed.statuses("t"); got[len(got)-1] != "eval:error" {
		t.Errorf("events = %v", got)
	}
}

func TestTracing(t *testing.T) {
	ring := trace.NewRingTracer(256, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	EvalSource(ctx, "t", "1 + 2", Options{})

	var names []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin {
			names = append(names, ev.Name)
		}
	}
	if got := strings.Join(names, ","); got != "file,tokenize,parse,eval" {
		t.Errorf("span begins = %s", got)
	}
	nodes := 0
	for _, ev := range ring.Snapshot() {
		if ev.Scope == trace.ScopeNode {
			nodes++
		}
	}
	if nodes != 3 {
		t.Errorf("node points = %d", nodes)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.tly")
	if err := os.WriteFile(path, []byte("\ufeff1 +\r\n2"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs, id, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	res := Eval(context.Background(), fs, id, Options{})
	if !res.OK() || res.Value.String() != "3" {
		t.Fatalf("value = %v (%v)", res.Value, res.Diag)
	}
	if _, _, err := LoadFile(filepath.Join(dir, "missing.tly")); err == nil {
		t.Error("expected load error")
	}
}
