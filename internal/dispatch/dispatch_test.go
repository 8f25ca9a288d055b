package dispatch

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/quocvuong92/build-shell/internal/session"
	"github.com/quocvuong92/build-shell/internal/toolchain"
)

// fakeRunner records invocations and can be told to fail the nth one.
type fakeRunner struct {
	invocations []toolchain.Invocation
	failOn      int // 1-based index of the invocation that fails, 0 = never
	watch       bool
}

var errRunFailed = errors.New("run failed")

func (f *fakeRunner) Run(ctx context.Context, inv toolchain.Invocation) error {
	f.invocations = append(f.invocations, inv)
	if f.failOn != 0 && len(f.invocations) == f.failOn {
		return errRunFailed
	}
	return nil
}

func (f *fakeRunner) WatchAvailable(ctx context.Context) bool {
	return f.watch
}

// Ensure the fake satisfies the dispatcher's dependency
var _ toolchain.Runner = (*fakeRunner)(nil)

func newTestState(toolchains ...string) *session.State {
	if len(toolchains) == 0 {
		toolchains = []string{"stable", "beta", "nightly"}
	}
	return session.New(session.Params{
		Prompt:           ">> ",
		SelectorPath:     "/test/bin/rustup",
		Project:          "foo",
		Version:          "1.2",
		DefaultToolchain: "stable",
		Toolchains:       toolchains,
		WorkDir:          "/work/foo",
	})
}

func newTestDispatcher(runner *fakeRunner) (*Dispatcher, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	d := New(runner, "cargo", WithOutput(&stdout, &stderr))
	return d, &stdout, &stderr
}

func dispatchLine(t *testing.T, d *Dispatcher, st *session.State, line string) {
	t.Helper()
	if err := d.Dispatch(context.Background(), st, line); err != nil {
		t.Fatalf("Dispatch(%q) returned error: %v", line, err)
	}
}

func TestDispatch_PlainRun(t *testing.T) {
	runner := &fakeRunner{}
	d, _, _ := newTestDispatcher(runner)
	st := newTestState()

	dispatchLine(t, d, st, "build --release")

	if len(runner.invocations) != 1 {
		t.Fatalf("got %d invocations, want 1", len(runner.invocations))
	}
	inv := runner.invocations[0]
	if inv.Selector != "/test/bin/rustup" {
		t.Errorf("Selector = %q, want %q", inv.Selector, "/test/bin/rustup")
	}
	if inv.Dir != "/work/foo" {
		t.Errorf("Dir = %q, want %q", inv.Dir, "/work/foo")
	}
	wantArgv := []string{"run", "stable", "cargo", "build", "--release"}
	if !reflect.DeepEqual(inv.Argv(), wantArgv) {
		t.Errorf("Argv() = %v, want %v", inv.Argv(), wantArgv)
	}
}

func TestDispatch_PlainRun_TrimsInput(t *testing.T) {
	runner := &fakeRunner{}
	d, _, _ := newTestDispatcher(runner)
	st := newTestState()

	dispatchLine(t, d, st, "   check   ")

	if len(runner.invocations) != 1 {
		t.Fatalf("got %d invocations, want 1", len(runner.invocations))
	}
	if !reflect.DeepEqual(runner.invocations[0].Args, []string{"check"}) {
		t.Errorf("Args = %v, want [check]", runner.invocations[0].Args)
	}
}

func TestDispatch_Exit(t *testing.T) {
	for _, line := range []string{"exit", "quit"} {
		t.Run(line, func(t *testing.T) {
			runner := &fakeRunner{}
			d, _, _ := newTestDispatcher(runner)
			st := newTestState()

			err := d.Dispatch(context.Background(), st, line)
			if !errors.Is(err, ErrExit) {
				t.Errorf("Dispatch(%q) error = %v, want ErrExit", line, err)
			}
			if len(runner.invocations) != 0 {
				t.Errorf("got %d invocations, want 0", len(runner.invocations))
			}
		})
	}
}

func TestDispatch_Help(t *testing.T) {
	runner := &fakeRunner{}
	d, stdout, _ := newTestDispatcher(runner)
	st := newTestState()

	dispatchLine(t, d, st, "help")

	if !strings.Contains(stdout.String(), "Special commands") {
		t.Errorf("help output missing usage text, got %q", stdout.String())
	}
	if len(runner.invocations) != 0 {
		t.Errorf("got %d invocations, want 0", len(runner.invocations))
	}
}

func TestDispatch_SetPrompt(t *testing.T) {
	runner := &fakeRunner{}
	d, _, _ := newTestDispatcher(runner)
	st := newTestState()

	dispatchLine(t, d, st, `p "{project}@{toolchain}> "`)

	if st.Prompt() != "{project}@{toolchain}> " {
		t.Errorf("Prompt() = %q, want quotes stripped", st.Prompt())
	}
	if len(runner.invocations) != 0 {
		t.Errorf("got %d invocations, want 0", len(runner.invocations))
	}
}

func TestDispatch_PermanentToolchainSwitch(t *testing.T) {
	runner := &fakeRunner{}
	d, _, _ := newTestDispatcher(runner)
	st := newTestState()

	dispatchLine(t, d, st, "++ beta")

	if st.Current() != "beta" {
		t.Fatalf("Current() = %q, want %q", st.Current(), "beta")
	}
	if len(runner.invocations) != 0 {
		t.Fatalf("got %d invocations, want 0 (switch only)", len(runner.invocations))
	}

	// A later plain command runs under the new toolchain, and the override
	// sticks afterward.
	dispatchLine(t, d, st, "test")

	if got := runner.invocations[0].Toolchain; got != "beta" {
		t.Errorf("invocation toolchain = %q, want %q", got, "beta")
	}
	if st.Current() != "beta" {
		t.Errorf("Current() after run = %q, want %q (no auto-restore)", st.Current(), "beta")
	}
}

func TestDispatch_OneShotToolchainSwitch(t *testing.T) {
	runner := &fakeRunner{}
	d, _, _ := newTestDispatcher(runner)
	st := newTestState()

	dispatchLine(t, d, st, "++ beta cargo build")

	if len(runner.invocations) != 1 {
		t.Fatalf("got %d invocations, want 1", len(runner.invocations))
	}
	inv := runner.invocations[0]
	if inv.Toolchain != "beta" {
		t.Errorf("invocation toolchain = %q, want %q", inv.Toolchain, "beta")
	}
	if !reflect.DeepEqual(inv.Args, []string{"cargo", "build"}) {
		t.Errorf("Args = %v, want [cargo build]", inv.Args)
	}
	if st.Current() != "stable" {
		t.Errorf("Current() = %q, want %q (restored)", st.Current(), "stable")
	}
}

func TestDispatch_OneShotToolchainSwitch_RestoresOnFailure(t *testing.T) {
	runner := &fakeRunner{failOn: 1}
	d, _, _ := newTestDispatcher(runner)
	st := newTestState()
	st.SetCurrent("nightly")

	err := d.Dispatch(context.Background(), st, "++ beta build")
	if !errors.Is(err, errRunFailed) {
		t.Fatalf("Dispatch error = %v, want errRunFailed", err)
	}
	if st.Current() != "nightly" {
		t.Errorf("Current() = %q, want %q (restored despite failure)", st.Current(), "nightly")
	}
}

func TestDispatch_MissingToolchainName(t *testing.T) {
	for _, line := range []string{"++", "++   "} {
		t.Run(line, func(t *testing.T) {
			runner := &fakeRunner{}
			d, _, _ := newTestDispatcher(runner)
			st := newTestState()

			err := d.Dispatch(context.Background(), st, line)
			if !errors.Is(err, ErrMissingToolchain) {
				t.Errorf("Dispatch(%q) error = %v, want ErrMissingToolchain", line, err)
			}
			if st.Current() != "stable" {
				t.Errorf("Current() = %q, want %q (override never set empty)", st.Current(), "stable")
			}
		})
	}
}

func TestDispatch_FanOut(t *testing.T) {
	runner := &fakeRunner{}
	d, stdout, _ := newTestDispatcher(runner)
	st := newTestState("stable", "nightly")
	st.SetCurrent("beta")

	dispatchLine(t, d, st, "+ test")

	if len(runner.invocations) != 2 {
		t.Fatalf("got %d invocations, want 2", len(runner.invocations))
	}
	for i, want := range []string{"stable", "nightly"} {
		if runner.invocations[i].Toolchain != want {
			t.Errorf("invocation %d toolchain = %q, want %q", i, runner.invocations[i].Toolchain, want)
		}
		if !reflect.DeepEqual(runner.invocations[i].Args, []string{"test"}) {
			t.Errorf("invocation %d args = %v, want [test]", i, runner.invocations[i].Args)
		}
	}

	out := stdout.String()
	stableIdx := strings.Index(out, "`stable`")
	nightlyIdx := strings.Index(out, "`nightly`")
	if stableIdx == -1 || nightlyIdx == -1 || stableIdx > nightlyIdx {
		t.Errorf("fan-out notices missing or out of order: %q", out)
	}

	if st.Current() != "beta" {
		t.Errorf("Current() = %q, want %q (restored)", st.Current(), "beta")
	}
}

func TestDispatch_FanOut_AbortsOnFirstFailureAndRestores(t *testing.T) {
	runner := &fakeRunner{failOn: 1}
	d, _, _ := newTestDispatcher(runner)
	st := newTestState("stable", "nightly")

	err := d.Dispatch(context.Background(), st, "+ test")
	if !errors.Is(err, errRunFailed) {
		t.Fatalf("Dispatch error = %v, want errRunFailed", err)
	}
	if len(runner.invocations) != 1 {
		t.Errorf("got %d invocations, want 1 (aborted before second toolchain)", len(runner.invocations))
	}
	if st.Current() != "stable" {
		t.Errorf("Current() = %q, want %q (restored after abort)", st.Current(), "stable")
	}
}

func TestDispatch_Watch_Unavailable(t *testing.T) {
	runner := &fakeRunner{watch: false}
	d, _, stderr := newTestDispatcher(runner)
	st := newTestState()

	// Unavailable watch tool is a warning, not an error
	dispatchLine(t, d, st, "~build")

	if len(runner.invocations) != 0 {
		t.Errorf("got %d invocations, want 0", len(runner.invocations))
	}
	if !strings.Contains(stderr.String(), "cargo-watch") {
		t.Errorf("stderr missing watch warning, got %q", stderr.String())
	}
}

func TestDispatch_Watch_Available(t *testing.T) {
	runner := &fakeRunner{watch: true}
	d, _, stderr := newTestDispatcher(runner)
	st := newTestState()

	dispatchLine(t, d, st, "~ test --all")

	if len(runner.invocations) != 1 {
		t.Fatalf("got %d invocations, want 1", len(runner.invocations))
	}
	wantArgs := []string{"watch", "test", "--all"}
	if !reflect.DeepEqual(runner.invocations[0].Args, wantArgs) {
		t.Errorf("Args = %v, want %v", runner.invocations[0].Args, wantArgs)
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected stderr output: %q", stderr.String())
	}
}

func TestDispatch_ErrorDoesNotPoisonDispatcher(t *testing.T) {
	runner := &fakeRunner{failOn: 1}
	d, _, _ := newTestDispatcher(runner)
	st := newTestState()

	if err := d.Dispatch(context.Background(), st, "build"); err == nil {
		t.Fatal("first Dispatch should fail")
	}

	// The next line dispatches normally, as the REPL loop expects
	dispatchLine(t, d, st, "check")

	if len(runner.invocations) != 2 {
		t.Fatalf("got %d invocations, want 2", len(runner.invocations))
	}
	if !reflect.DeepEqual(runner.invocations[1].Args, []string{"check"}) {
		t.Errorf("second invocation args = %v, want [check]", runner.invocations[1].Args)
	}
}
