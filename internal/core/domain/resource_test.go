package domain

import "testing"

func TestRemoveResource(t *testing.T) {
	list := []Resource{
		{ID: "r1", Name: "Room A"},
		{ID: "r2", Name: "Room B"},
		{ID: "r3", Name: "Room C"},
	}

	got := RemoveResource(list, "r2")

	if len(got) != 2 {
		t.Fatalf("got %d resources, want 2", len(got))
	}
	for _, r := range got {
		if r.ID == "r2" {
			t.Fatalf("r2 still present after removal")
		}
	}

	// Removing an unknown id is a no-op.
	if got := RemoveResource(list, "r9"); len(got) != len(list) {
		t.Fatalf("unknown id shrank the list to %d", len(got))
	}
}

func TestUserIsAdmin(t *testing.T) {
	if (&User{Role: RoleUser}).IsAdmin() {
		t.Fatalf("user role reported as admin")
	}
	if !(&User{Role: RoleAdmin}).IsAdmin() {
		t.Fatalf("admin role not recognised")
	}
	var nobody *User
	if nobody.IsAdmin() {
		t.Fatalf("nil identity reported as admin")
	}
}
