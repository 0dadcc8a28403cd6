package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/kv"
)

type rec struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r rec) GetID() string { return r.ID }

func ids(rs []rec) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestLoad_MissingKeyIsEmpty(t *testing.T) {
	c, err := Load[rec](context.Background(), kv.NewMemoryStore(), "things")
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.All())
}

func TestLoad_CorruptValue(t *testing.T) {
	ctx := context.Background()
	s := kv.NewMemoryStore()
	require.NoError(t, s.Set(ctx, "things", `{"not":"an array"}`))

	_, err := Load[rec](ctx, s, "things")
	require.ErrorIs(t, err, common.ErrCorruptData)
	require.ErrorIs(t, err, common.ErrStorage)
}

type failingStore struct{ kv.MemoryStore }

func (*failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, common.ErrStorage
}

func TestLoad_SubstrateFailurePropagates(t *testing.T) {
	_, err := Load[rec](context.Background(), &failingStore{}, "things")
	require.ErrorIs(t, err, common.ErrStorage)
}

func TestSaveLoad_RoundTripPreservesOrder(t *testing.T) {
	ctx := context.Background()
	s := kv.NewMemoryStore()

	c := New([]rec{{"3", "c"}, {"1", "a"}, {"2", "b"}})
	require.NoError(t, c.Save(ctx, s, "things"))

	loaded, err := Load[rec](ctx, s, "things")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(c.All(), loaded.All()))
}

func TestSave_EmptyCollectionIsEmptyArray(t *testing.T) {
	ctx := context.Background()
	s := kv.NewMemoryStore()

	require.NoError(t, New[rec](nil).Save(ctx, s, "things"))

	v, ok, err := s.Get(ctx, "things")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestAppendGetFindFilter(t *testing.T) {
	c := New[rec](nil)
	c.Append(rec{"1", "a"})
	c.Append(rec{"2", "b"})
	c.Append(rec{"3", "a"})

	got, ok := c.Get("2")
	require.True(t, ok)
	assert.Equal(t, "b", got.Name)

	_, ok = c.Get("nope")
	assert.False(t, ok)

	found, ok := c.Find(func(r rec) bool { return r.Name == "a" })
	require.True(t, ok)
	assert.Equal(t, "1", found.ID)

	_, ok = c.Find(func(r rec) bool { return r.Name == "z" })
	assert.False(t, ok)

	assert.Equal(t, []string{"1", "3"}, ids(c.Filter(func(r rec) bool { return r.Name == "a" })))
	assert.NotNil(t, c.Filter(func(rec) bool { return false }))
}

func TestReplace_KeepsPosition(t *testing.T) {
	c := New([]rec{{"1", "a"}, {"2", "b"}, {"3", "c"}})

	require.True(t, c.Replace("2", rec{"2", "B"}))
	assert.Equal(t, []rec{{"1", "a"}, {"2", "B"}, {"3", "c"}}, c.All())

	assert.False(t, c.Replace("9", rec{"9", "x"}))
	assert.Equal(t, 3, c.Len())
}

func TestRemove_KeepsOrderOfTheRest(t *testing.T) {
	c := New([]rec{{"1", "a"}, {"2", "b"}, {"3", "c"}})

	require.True(t, c.Remove("2"))
	assert.Equal(t, []string{"1", "3"}, ids(c.All()))

	got, ok := c.Get("3")
	require.True(t, ok)
	assert.Equal(t, "c", got.Name)

	assert.False(t, c.Remove("2"))
	assert.Equal(t, []string{"1", "3"}, ids(c.All()))
}

func TestAll_ReturnsCopy(t *testing.T) {
	c := New([]rec{{"1", "a"}})
	all := c.All()
	all[0].Name = "mutated"

	got, _ := c.Get("1")
	assert.Equal(t, "a", got.Name)
}

func TestSave_SubstrateFailure(t *testing.T) {
	s := &rejectingStore{}
	err := New([]rec{{"1", "a"}}).Save(context.Background(), s, "things")
	require.ErrorIs(t, err, errRejected)
}

var errRejected = errors.New("rejected")

type rejectingStore struct{ kv.MemoryStore }

func (*rejectingStore) Set(context.Context, string, string) error { return errRejected }
