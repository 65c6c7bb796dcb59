package types

import (
	"errors"
	"testing"
)

func TestRegistryRejectsDuplicateLabel(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Register("IMAGE_ID", TokenUnique); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	_, err := r.Register("IMAGE_ID", TokenStorage)
	if !errors.Is(err, ErrDuplicateLabel) {
		t.Errorf("duplicate Register error = %v, want ErrDuplicateLabel", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d after rejected registration, want 1", r.Len())
	}
}

func TestRegistryRejectsEmptyLabel(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Register("", TokenWildcard); !errors.Is(err, ErrEmptyLabel) {
		t.Errorf("Register(\"\") error = %v, want ErrEmptyLabel", err)
	}
}

func TestUniqueTypesDeclarationOrder(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("A", TokenStorage)
	first := r.MustRegister("B", TokenUnique)
	r.MustRegister("C", TokenQuantity)
	second := r.MustRegister("D", TokenUnique)

	got := r.UniqueTypes()
	if len(got) != 2 || got[0] != first || got[1] != second {
		t.Errorf("UniqueTypes() = %v, want [B D] in declaration order", got)
	}
}

func TestStandardRegistry(t *testing.T) {
	std := NewStandard()

	if std.Registry.Len() != 15 {
		t.Errorf("standard registry has %d types, want 15", std.Registry.Len())
	}

	kinds := map[*DataType]TokenKind{
		std.ImageSet:     TokenRedundant,
		std.AbsoluteFile: TokenFilename,
		std.ImageName:    TokenUnique,
		std.ImageID:      TokenUnique,
		std.ClassName:    TokenStorage,
		std.XMin:         TokenQuantity,
		std.Generic:      TokenWildcard,
	}
	for dt, want := range kinds {
		if dt.Kind() != want {
			t.Errorf("%s kind = %s, want %s", dt.Label(), dt.Kind(), want)
		}
	}

	// Tie-break order for identity matching: image name before image id.
	unique := std.Registry.UniqueTypes()
	if len(unique) != 2 || unique[0] != std.ImageName || unique[1] != std.ImageID {
		t.Errorf("UniqueTypes() = %v, want [IMAGE_NAME IMAGE_ID]", unique)
	}
}

func TestStandardRegistriesAreIndependent(t *testing.T) {
	a := NewStandard()
	b := NewStandard()

	if _, err := NewItem(a.ImageID, "7"); err != nil {
		t.Fatal(err)
	}
	if a.ImageID.Token().SeenCount() != 1 {
		t.Error("value was not recorded on first registry")
	}
	if b.ImageID.Token().SeenCount() != 0 {
		t.Error("registries share token state, want independent")
	}
}
