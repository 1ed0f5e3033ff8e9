package systemd

import (
	"errors"
	"testing"
)

func TestNotifierStates(t *testing.T) {
	t.Parallel()

	var got []string
	n := NewFunc(func(state string) (bool, error) {
		got = append(got, state)
		return true, nil
	})

	if err := n.Ready(); err != nil {
		t.Fatalf("Ready: %v", err)
	}
	if err := n.Status(" 3 new stars\nsent "); err != nil {
		t.Fatalf("Status: %v", err)
	}
	if err := n.Stopping(); err != nil {
		t.Fatalf("Stopping: %v", err)
	}

	want := []string{"READY=1", "STATUS=3 new stars sent", "STOPPING=1"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("state[%d]=%q, want %q", i, got[i], want[i])
		}
	}
}

func TestNotifierErrorAndNil(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	n := NewFunc(func(string) (bool, error) { return false, boom })
	if err := n.Ready(); !errors.Is(err, boom) {
		t.Fatalf("err=%v, want boom", err)
	}

	var nilN *Notifier
	if err := nilN.Status("x"); err != nil {
		t.Fatalf("nil notifier: %v", err)
	}
}

func TestNewOutsideSystemd(t *testing.T) {
	t.Setenv("NOTIFY_SOCKET", "")
	if err := New().Ready(); err != nil {
		t.Fatalf("Ready without socket: %v", err)
	}
}
