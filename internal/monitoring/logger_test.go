package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got []string
	SetLogger(func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	})
	Logf("backed up %s", "grid")
	if len(got) != 1 || got[0] != "backed up grid" {
		t.Fatalf("got %q, want one line %q", got, "backed up grid")
	}

	// nil installs a no-op logger
	SetLogger(nil)
	Logf("dropped")
	if len(got) != 1 {
		t.Errorf("no-op logger reached the previous logger: %q", got)
	}
}

func TestDebugf(t *testing.T) {
	original := Logf
	defer func() {
		Logf = original
		SetDebug(false)
	}()

	var got []string
	SetLogger(func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	})

	Debugf("generation %d", 1)
	if len(got) != 0 {
		t.Fatalf("debug disabled but logged %q", got)
	}

	SetDebug(true)
	Debugf("generation %d", 2)
	if len(got) != 1 || got[0] != "[debug] generation 2" {
		t.Errorf("got %q, want [\"[debug] generation 2\"]", got)
	}
}
