package store

import (
	"errors"
	"testing"
)

func TestThresholdRepository_SetAndAll(t *testing.T) {
	s := testStore(t)
	repo := s.Thresholds()

	t.Run("empty", func(t *testing.T) {
		all, err := repo.All()
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		if len(all) != 0 {
			t.Errorf("got %d overrides, want 0", len(all))
		}
	})

	if err := repo.Set("extend_factor", 1.8); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := repo.Set("fist_max_tip_wrist", 0.5); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	all, err := repo.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d overrides, want 2", len(all))
	}
	if all["extend_factor"] != 1.8 || all["fist_max_tip_wrist"] != 0.5 {
		t.Errorf("All = %v", all)
	}
}

func TestThresholdRepository_SetReplaces(t *testing.T) {
	s := testStore(t)
	repo := s.Thresholds()

	repo.Set("extend_factor", 1.8)
	if err := repo.Set("extend_factor", 2.0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	all, err := repo.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if all["extend_factor"] != 2.0 {
		t.Errorf("extend_factor = %v, want 2.0", all["extend_factor"])
	}
}

func TestThresholdRepository_Delete(t *testing.T) {
	s := testStore(t)
	repo := s.Thresholds()

	repo.Set("extend_factor", 1.8)
	if err := repo.Delete("extend_factor"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	all, err := repo.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("got %d overrides after delete, want 0", len(all))
	}

	if err := repo.Delete("extend_factor"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}
