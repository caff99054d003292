package mongo

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/czarstudio/studio-api/internal/core/domain"
	"github.com/czarstudio/studio-api/internal/core/ports"
)

func TestObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	got, err := objectID(oid.Hex(), domain.ErrBookingNotFound)
	if err != nil || got != oid {
		t.Fatalf("objectID(%s) = %v, %v", oid.Hex(), got, err)
	}

	for _, id := range []string{"", "abc", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		if _, err := objectID(id, domain.ErrBookingNotFound); !errors.Is(err, domain.ErrBookingNotFound) {
			t.Fatalf("objectID(%q): expected not found, got %v", id, err)
		}
	}
}

func TestMediaFilter(t *testing.T) {
	yes := true
	no := false

	if got := mediaFilter(ports.MediaFilter{}); len(got) != 0 {
		t.Fatalf("empty filter should match everything, got %v", got)
	}

	got := mediaFilter(ports.MediaFilter{Category: "Weddings", Featured: &yes, Published: &no})
	want := bson.M{"category": "Weddings", "featured": true, "published": false}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("key %s: got %v, want %v", k, got[k], v)
		}
	}
}

func TestMediaSet(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	title := "New title"
	url := "https://cdn.example.com/x.jpg"
	featured := true

	set := mediaSet(ports.MediaUpdate{Title: &title, URL: &url, Featured: &featured}, "image_url", now)

	if set["title"] != title || set["image_url"] != url || set["featured"] != true {
		t.Fatalf("unexpected set: %v", set)
	}
	if set["updated_at"] != now {
		t.Fatalf("updated_at must always be written")
	}
	for _, k := range []string{"description", "category", "video_url", "date", "published"} {
		if _, ok := set[k]; ok {
			t.Fatalf("unset field %s must not be written", k)
		}
	}
}

func TestUserSet_NormalisesEmailAndPermissions(t *testing.T) {
	email := "  Staff@Example.COM "
	perms := []string{"b", "a", "b"}
	role := domain.RoleViewer

	set := userSet(ports.UserUpdate{Email: &email, Permissions: &perms, Role: &role}, time.Now())

	if set["email"] != "staff@example.com" {
		t.Fatalf("email not normalised: %v", set["email"])
	}
	gotPerms, _ := set["permissions"].([]string)
	if len(gotPerms) != 2 || gotPerms[0] != "a" || gotPerms[1] != "b" {
		t.Fatalf("unexpected permissions: %v", set["permissions"])
	}
	if set["role"] != "viewer" {
		t.Fatalf("unexpected role: %v", set["role"])
	}
	if _, ok := set["password_hash"]; ok {
		t.Fatalf("password hash must not be touched")
	}
}
