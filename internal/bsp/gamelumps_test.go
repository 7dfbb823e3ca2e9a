package bsp

import "testing"

func TestGameLumpListPreservesInsertionOrder(t *testing.T) {
	l := NewGameLumpList()
	l.Set(GameLump{ID: [4]byte{'s', 'p', 'r', 'p'}})
	l.Set(GameLump{ID: [4]byte{'d', 'e', 't', 'l'}})
	l.Set(GameLump{ID: [4]byte{'s', 't', 'a', 't'}})

	all := l.All()
	want := []string{"sprp", "detl", "stat"}
	for i, g := range all {
		if string(g.ID[:]) != want[i] {
			t.Errorf("All()[%d].ID = %q, want %q", i, g.ID, want[i])
		}
	}
}

func TestGameLumpListSetOverwritesInPlace(t *testing.T) {
	l := NewGameLumpList()
	l.Set(GameLump{ID: [4]byte{'a', 'a', 'a', 'a'}, Version: 1})
	l.Set(GameLump{ID: [4]byte{'b', 'b', 'b', 'b'}, Version: 1})
	l.Set(GameLump{ID: [4]byte{'a', 'a', 'a', 'a'}, Version: 2})

	all := l.All()
	if len(all) != 2 {
		t.Fatalf("len(All()) = %d, want 2 (overwrite, not append)", len(all))
	}
	if all[0].Version != 2 {
		t.Errorf("overwritten entry kept old version: %+v", all[0])
	}
	if string(all[0].ID[:]) != "aaaa" {
		t.Errorf("overwrite should preserve original position, got %+v", all)
	}
}

func TestGameLumpListDeleteReindexes(t *testing.T) {
	l := NewGameLumpList()
	l.Set(GameLump{ID: [4]byte{'1', '1', '1', '1'}})
	l.Set(GameLump{ID: [4]byte{'2', '2', '2', '2'}})
	l.Set(GameLump{ID: [4]byte{'3', '3', '3', '3'}})

	l.Delete([4]byte{'2', '2', '2', '2'})
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	if _, ok := l.Get([4]byte{'3', '3', '3', '3'}); !ok {
		t.Fatal("entry after the deleted one should still be findable")
	}
}

func TestLumpIDAliases(t *testing.T) {
	id, ok := LumpIDByAlias("PROPCOLLISION")
	if !ok || id != LumpPortals {
		t.Fatalf("LumpIDByAlias(PROPCOLLISION) = (%v, %v), want (LumpPortals, true)", id, ok)
	}
	id2, ok := LumpIDByAlias("ENTITIES")
	if !ok || id2 != LumpEntities {
		t.Fatalf("LumpIDByAlias(ENTITIES) = (%v, %v), want (LumpEntities, true)", id2, ok)
	}
	if _, ok := LumpIDByAlias("NOT_A_LUMP"); ok {
		t.Fatal("unknown alias should report false")
	}
}
