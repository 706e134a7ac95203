package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	unlocked bool

	calls []string
	args  []string
}

func (f *fakeExec) isUnlocked() bool { return f.unlocked }
func (f *fakeExec) Unlock(ctx context.Context) error {
	f.calls = append(f.calls, "unlock")
	f.unlocked = true
	return nil
}
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) List(ctx context.Context) error { f.calls = append(f.calls, "list"); return nil }
func (f *fakeExec) Show(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "show")
	f.args = args
	return nil
}
func (f *fakeExec) Claim(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "claim")
	f.args = args
	return nil
}
func (f *fakeExec) Reveal(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "reveal")
	f.args = args
	return nil
}
func (f *fakeExec) Confirm(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "confirm")
	f.args = args
	return nil
}
func (f *fakeExec) Approve(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "approve")
	f.args = args
	return nil
}
func (f *fakeExec) Reject(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "reject")
	f.args = args
	return nil
}
func (f *fakeExec) Claims(ctx context.Context) error {
	f.calls = append(f.calls, "claims")
	return nil
}
func (f *fakeExec) Events(ctx context.Context) error {
	f.calls = append(f.calls, "events")
	return nil
}
func (f *fakeExec) History(ctx context.Context) error {
	f.calls = append(f.calls, "history")
	return nil
}
func (f *fakeExec) Lock(ctx context.Context) error {
	f.calls = append(f.calls, "lock")
	f.unlocked = false
	return nil
}

func TestRunREPL_UnlockFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"unlock",
		"help",
		"register",
		"list",
		"show 0xabc",
		"history",
		"foobar",
		"lock",
		"exit",
	}, "\n"))

	exec := &fakeExec{unlocked: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"unlock", "register", "list", "show", "history", "lock"}
	if len(exec.calls) != len(wantOrder) {
		t.Fatalf("calls mismatch: %+v", exec.calls)
	}
	for i, c := range exec.calls {
		if c != wantOrder[i] {
			t.Fatalf("commands order mismatch: got %v, want %v", exec.calls, wantOrder)
		}
	}
}

func TestRunREPL_PassesArgs(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("reveal 0xabc 2\nexit\n")
	exec := &fakeExec{unlocked: true}

	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(input))

	if len(exec.calls) != 1 || exec.calls[0] != "reveal" {
		t.Fatalf("calls: %+v", exec.calls)
	}
	if len(exec.args) != 2 || exec.args[0] != "0xabc" || exec.args[1] != "2" {
		t.Fatalf("args: %+v", exec.args)
	}
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("")))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %+v", exec.calls)
	}
}
