package types

import "testing"

func TestPruneFollowsInstanceChain(t *testing.T) {
	a := NewArena()
	v1 := a.NewVar()
	v2 := a.NewVar()
	num := a.NewPrimitive(Number)

	a.SetInstance(v1, v2)
	a.SetInstance(v2, num)

	if got := a.Prune(v1); got != num {
		t.Errorf("Prune(v1) = %d, want %d", got, num)
	}
	// Path compression: v1 should now point directly at num.
	v1Kind := a.Get(v1).Kind.(Variable)
	if v1Kind.Instance == nil || *v1Kind.Instance != num {
		t.Errorf("expected path compression to rebind v1 directly to num")
	}
}

func TestPruneUnboundVariableIsItself(t *testing.T) {
	a := NewArena()
	v := a.NewVar()
	if got := a.Prune(v); got != v {
		t.Errorf("Prune(v) = %d, want %d", got, v)
	}
}
