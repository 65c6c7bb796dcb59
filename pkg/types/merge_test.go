package types

import (
	"errors"
	"testing"
)

func TestMergeEntryListsEmptyIncoming(t *testing.T) {
	std := testTypes(t)
	base := []*DataEntry{
		NewEntry(MustItem(std.ImageID, "1"), MustItem(std.ImageName, "cat.jpg")),
		NewEntry(MustItem(std.ImageID, "2"), MustItem(std.ImageName, "dog.jpg")),
	}

	got, err := MergeEntryLists(std.Registry, base, nil)
	if err != nil {
		t.Fatalf("MergeEntryLists failed: %v", err)
	}
	if len(got) != len(base) {
		t.Fatalf("result has %d entries, want %d", len(got), len(base))
	}
	for i := range got {
		if v, _ := got[i].Value("IMAGE_ID"); v != base[i].Items()[0].Value {
			t.Errorf("entry %d IMAGE_ID mismatch", i)
		}
	}
}

func TestMergeEntryListsJoinsOnSharedIdentity(t *testing.T) {
	std := testTypes(t)
	base := []*DataEntry{
		NewEntry(MustItem(std.ImageID, "1"), MustItem(std.ImageName, "cat.jpg")),
	}
	incoming := []*DataEntry{
		NewEntry(MustItem(std.ImageID, "1"), MustItem(std.ClassName, "cat")),
	}

	got, err := MergeEntryLists(std.Registry, base, incoming)
	if err != nil {
		t.Fatalf("MergeEntryLists failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("result has %d entries, want 1", len(got))
	}
	e := got[0]
	for label, want := range map[string]string{
		"IMAGE_ID":   "1",
		"IMAGE_NAME": "cat.jpg",
		"CLASS_NAME": "cat",
	} {
		if v, _ := e.Value(label); v != want {
			t.Errorf("%s = %q, want %q", label, v, want)
		}
	}
}

func TestMergeEntryListsCountsUnmatched(t *testing.T) {
	std := testTypes(t)
	base := []*DataEntry{
		NewEntry(MustItem(std.ImageID, "1")),
		NewEntry(MustItem(std.ImageID, "2")),
	}
	incoming := []*DataEntry{
		NewEntry(MustItem(std.ImageID, "2"), MustItem(std.ClassName, "dog")), // matches
		NewEntry(MustItem(std.ImageID, "3")),                                 // unmatched
		NewEntry(MustItem(std.ClassID, "0")),                                 // no identity at all
	}

	got, err := MergeEntryLists(std.Registry, base, incoming)
	if err != nil {
		t.Fatalf("MergeEntryLists failed: %v", err)
	}
	// len(base) + 2 unmatched incoming entries; nothing lost or duplicated.
	if len(got) != 4 {
		t.Fatalf("result has %d entries, want 4", len(got))
	}
	if v, _ := got[1].Value("CLASS_NAME"); v != "dog" {
		t.Errorf("matched entry CLASS_NAME = %q, want dog", v)
	}
}

func TestMergeEntryListsConflictLeavesInputsUntouched(t *testing.T) {
	// CLASS_NAME is a storage type in the standard registry; build a
	// registry where it is unique to force the conflict scenario.
	r := NewRegistry()
	imageID := r.MustRegister("IMAGE_ID", TokenUnique)
	className := r.MustRegister("CLASS_NAME", TokenUnique)

	base := []*DataEntry{
		NewEntry(MustItem(imageID, "1"), MustItem(className, "cat")),
	}
	incoming := []*DataEntry{
		NewEntry(MustItem(imageID, "1"), MustItem(className, "dog")),
	}

	_, err := MergeEntryLists(r, base, incoming)
	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("MergeEntryLists error = %v, want *ConflictError", err)
	}
	if cerr.TypeLabel != "CLASS_NAME" {
		t.Errorf("conflict on %s, want CLASS_NAME", cerr.TypeLabel)
	}

	// All-or-nothing: base entry is untouched.
	if v, _ := base[0].Value("CLASS_NAME"); v != "cat" {
		t.Errorf("base entry mutated by failed list merge: CLASS_NAME = %q", v)
	}
}

func TestMergeEntryListsFirstUniqueTypeClaims(t *testing.T) {
	// Declaration order fixes the tie-break: an incoming entry carrying
	// both identity fields merges via the first type that hits.
	r := NewRegistry()
	name := r.MustRegister("IMAGE_NAME", TokenUnique)
	id := r.MustRegister("IMAGE_ID", TokenUnique)
	note := r.MustRegister("NOTE", TokenStorage)

	base := []*DataEntry{
		NewEntry(MustItem(name, "cat.jpg"), MustItem(note, "by-name")),
		NewEntry(MustItem(id, "1"), MustItem(note, "by-id")),
	}
	incoming := []*DataEntry{
		NewEntry(MustItem(name, "cat.jpg"), MustItem(id, "1")),
	}

	got, err := MergeEntryLists(r, base, incoming)
	if err != nil {
		t.Fatalf("MergeEntryLists failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("result has %d entries, want 2", len(got))
	}
	// The IMAGE_NAME slot claimed the entry; the by-id entry stays as-is.
	if v, _ := got[0].Value("IMAGE_ID"); v != "1" {
		t.Errorf("first entry IMAGE_ID = %q, want 1", v)
	}
	if _, ok := got[1].Value("IMAGE_NAME"); ok {
		t.Error("second base entry unexpectedly gained IMAGE_NAME")
	}
}

func TestMergeEntryListsRejectsDuplicateBaseIdentity(t *testing.T) {
	std := testTypes(t)
	base := []*DataEntry{
		NewEntry(MustItem(std.ImageID, "1"), MustItem(std.ClassName, "cat")),
		NewEntry(MustItem(std.ImageID, "1"), MustItem(std.ClassName, "dog")),
	}

	_, err := MergeEntryLists(std.Registry, base, nil)
	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("MergeEntryLists error = %v, want *ConflictError for duplicate base identity", err)
	}
	if cerr.TypeLabel != "IMAGE_ID" || cerr.ValueA != "1" {
		t.Errorf("ConflictError = %+v, want IMAGE_ID 1", cerr)
	}
}
