package rewrite

import (
	"testing"

	"github.com/gocontainer/avmeta/internal/types"
)

func TestPlan_SplicesWithinPaddingBudget(t *testing.T) {
	p := Policy{MinPadding: 0, MaxPadding: 4096, PreferredPadding: 1024}

	d, err := Plan(p, 2000, 2100, 1024)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if !d.Splice {
		t.Fatal("expected splice decision when delta fits within padding budget")
	}
	if d.PaddingBytes != 924 {
		t.Errorf("PaddingBytes = %d, want 924", d.PaddingBytes)
	}
}

func TestPlan_RewritesWhenDeltaExceedsBudget(t *testing.T) {
	p := Policy{MinPadding: 0, MaxPadding: 1024, PreferredPadding: 512}

	d, err := Plan(p, 2000, 5000, 1024)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if d.Splice {
		t.Fatal("expected full rewrite when delta exceeds padding budget")
	}
	if d.PaddingBytes != 512 {
		t.Errorf("PaddingBytes = %d, want 512 (PreferredPadding)", d.PaddingBytes)
	}
}

func TestPlan_ForceRewriteSkipsSplice(t *testing.T) {
	p := Policy{MinPadding: 0, MaxPadding: 4096, PreferredPadding: 1024, ForceRewrite: true}

	d, err := Plan(p, 2000, 2010, 1024)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if d.Splice {
		t.Fatal("ForceRewrite must never splice even when the delta would fit")
	}
	if d.PaddingBytes != 1024 {
		t.Errorf("PaddingBytes = %d, want 1024 (PreferredPadding)", d.PaddingBytes)
	}
}

func TestPlan_ForcedUnsupportedPositionFails(t *testing.T) {
	p := Policy{
		MinPadding: 0, MaxPadding: 4096, PreferredPadding: 0,
		ForcePosition: true, PositionSupported: false,
		Position: types.PositionAfterData,
	}

	_, err := Plan(p, 100, 100, 0)
	if err == nil {
		t.Fatal("expected error when forcing an unsupported position")
	}
	if _, ok := err.(*types.NotSupportedError); !ok {
		t.Errorf("expected *types.NotSupportedError, got %T", err)
	}
}

func TestPlan_PreferredPaddingClampedToBudget(t *testing.T) {
	p := Policy{MinPadding: 100, MaxPadding: 200, PreferredPadding: 50, ForceRewrite: true}

	d, err := Plan(p, 10, 10, 0)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if d.PaddingBytes != 100 {
		t.Errorf("PaddingBytes = %d, want 100 (clamped up to MinPadding)", d.PaddingBytes)
	}
}
