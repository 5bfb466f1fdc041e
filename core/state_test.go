package core

import (
	"testing"
)

func TestFrontierOrder(t *testing.T) {
	f := NewFrontier(9, 3, 7, 3, 1)

	if f.Len() != 4 {
		t.Fatalf("len %d", f.Len())
	}
	want := []StateID{1, 3, 7, 9}
	for i, id := range f.IDs() {
		if id != want[i] {
			t.Fatalf("ids %v", f.IDs())
		}
	}

	if f.Add(3) {
		t.Fatal("3 reported as new")
	}
	if !f.Add(5) {
		t.Fatal("5 reported as old")
	}
	if !f.Has(5) || f.Has(6) {
		t.Fatal("membership")
	}
	if f.String() != "{1,3,5,7,9}" {
		t.Fatalf("string %s", f)
	}

	g := f.Copy()
	g.Add(100)
	if f.Has(100) {
		t.Fatal("copy shares storage")
	}
}

func TestRolesCheck(t *testing.T) {
	ok := Roles{Start: 2, Match: 0, Reject: 1, Limit: 3}
	if err := ok.Check(); err != nil {
		t.Fatal(err)
	}

	for _, bad := range []Roles{
		{Start: -1, Match: 0, Reject: 1},
		{Start: 5, Match: 0, Reject: 1, Limit: 3},
		{Start: 2, Match: 1, Reject: 1},
		{Start: 1, Match: 0, Reject: 1},
	} {
		if err := bad.Check(); err == nil {
			t.Fatalf("accepted %+v", bad)
		}
	}
}

func TestRolesValid(t *testing.T) {
	r := Roles{Limit: 4}
	for id, want := range map[StateID]bool{
		-1: false,
		0:  true,
		3:  true,
		4:  false,
	} {
		if r.Valid(id) != want {
			t.Fatalf("Valid(%d) != %v", id, want)
		}
	}

	unbounded := Roles{}
	if !unbounded.Valid(1 << 20) {
		t.Fatal("no limit should mean any non-negative id")
	}
	if unbounded.Valid(-1) {
		t.Fatal("negative id")
	}
}
