package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-valuation/internal/config"
)

func sampleConfig() config.Config {
	var c config.Config
	c.Baseline.BaseLoadKW = 10
	c.Tariff.Mode = "fixed"
	c.Tariff.FixedImportPrice = 0.1
	c.Technologies.Solar = &config.SolarConfig{CapacityKW: 100, AnnualYieldHours: 1100}
	c.Economics.DiscountRate = 0.05
	c.Economics.HorizonYears = 10
	return c
}

func TestCreateAndGet(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	p, err := s.Create("alice", "rooftop pv", sampleConfig())
	require.NoError(t, err)
	assert.Len(t, p.ID, 12)
	assert.Equal(t, "alice", p.User)
	assert.Equal(t, "rooftop pv", p.Name)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := s.Get("alice", p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, 100.0, got.Config.Technologies.Solar.CapacityKW)
}

func TestGetUnknown(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get("alice", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectsAreKeyedByUser(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	p, err := s.Create("alice", "rooftop pv", sampleConfig())
	require.NoError(t, err)

	// One user's project is invisible to another.
	_, err = s.Get("bob", p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	bobList, err := s.List("bob")
	require.NoError(t, err)
	assert.Empty(t, bobList)

	aliceList, err := s.List("alice")
	require.NoError(t, err)
	require.Len(t, aliceList, 1)

	// Files land in a per-user subdirectory.
	_, err = os.Stat(filepath.Join(dir, "alice", p.ID+".json"))
	assert.NoError(t, err)

	assert.ErrorIs(t, s.Delete("bob", p.ID), ErrNotFound)
	require.NoError(t, s.Delete("alice", p.ID))
}

func TestRejectsInvalidUser(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	for _, user := range []string{"", ".", "..", "a/b", `a\b`, "a..b"} {
		_, err := s.Create(user, "p", sampleConfig())
		assert.ErrorIs(t, err, ErrInvalidUser, "user %q", user)
		_, err = s.List(user)
		assert.ErrorIs(t, err, ErrInvalidUser, "user %q", user)
	}
}

func TestListOrdersByCreation(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	first, err := s.Create("alice", "first", sampleConfig())
	require.NoError(t, err)
	second, err := s.Create("alice", "second", sampleConfig())
	require.NoError(t, err)

	list, err := s.List("alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestUpdate(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	p, err := s.Create("alice", "before", sampleConfig())
	require.NoError(t, err)

	cfg := sampleConfig()
	cfg.Technologies.Solar.CapacityKW = 250

	updated, err := s.Update("alice", p.ID, "after", cfg)
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Name)
	assert.Equal(t, 250.0, updated.Config.Technologies.Solar.CapacityKW)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(p.UpdatedAt))

	_, err = s.Update("alice", "missing", "x", cfg)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	p, err := s.Create("alice", "doomed", sampleConfig())
	require.NoError(t, err)

	require.NoError(t, s.Delete("alice", p.ID))
	_, err = s.Get("alice", p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete("alice", p.ID), ErrNotFound)

	_, err = os.Stat(filepath.Join(dir, "alice", p.ID+".json"))
	assert.True(t, os.IsNotExist(err))
}

func TestReopenLoadsFromDisk(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir)
	require.NoError(t, err)
	p, err := s1.Create("alice", "persistent", sampleConfig())
	require.NoError(t, err)
	_, err = s1.Create("bob", "other", sampleConfig())
	require.NoError(t, err)

	s2, err := Open(dir)
	require.NoError(t, err)
	got, err := s2.Get("alice", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.User)
	assert.Equal(t, "persistent", got.Name)
	assert.Equal(t, 100.0, got.Config.Technologies.Solar.CapacityKW)
	assert.Equal(t, 2, s2.Count())
}
