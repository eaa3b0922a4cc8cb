package shopping

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/receiptify/backend/internal/testhelpers"
)

// exerciseSnapshotStore checks the contract every SnapshotStore implements.
func exerciseSnapshotStore(t *testing.T, snapshots SnapshotStore) {
	t.Helper()
	ctx := context.Background()
	key := SnapshotKeyFor("contract")

	_, err := snapshots.LoadSnapshot(ctx, key)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	require.NoError(t, snapshots.SaveSnapshot(ctx, key, []byte(`[{"title":"first"}]`)))
	data, err := snapshots.LoadSnapshot(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title":"first"}]`, string(data))

	require.NoError(t, snapshots.SaveSnapshot(ctx, key, []byte(`[]`)))
	data, err = snapshots.LoadSnapshot(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	_, err = snapshots.LoadSnapshot(ctx, SnapshotKeyFor("someone-else"))
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	require.NoError(t, snapshots.DeleteSnapshot(ctx, key))
	_, err = snapshots.LoadSnapshot(ctx, key)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	// deleting twice is not an error
	require.NoError(t, snapshots.DeleteSnapshot(ctx, key))

	// a full store round trip through the backend
	store := NewStore(WithSnapshots(snapshots, key), WithAutoSave(true))
	p := pancakes()
	store.Add(ctx, p)

	restored := NewStore(WithSnapshots(snapshots, key))
	restored.Load(ctx)
	assert.Equal(t, store.Recipes(), restored.Recipes())
}

func TestMemorySnapshotStore(t *testing.T) {
	exerciseSnapshotStore(t, NewMemorySnapshotStore())
}

func TestMemorySnapshotStoreCopiesData(t *testing.T) {
	ctx := context.Background()
	snapshots := NewMemorySnapshotStore()
	data := []byte("[]")
	require.NoError(t, snapshots.SaveSnapshot(ctx, SnapshotKey, data))
	data[0] = 'x'

	got, err := snapshots.LoadSnapshot(ctx, SnapshotKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestDBSnapshotStoreSQLite(t *testing.T) {
	exerciseSnapshotStore(t, NewDBSnapshotStore(testhelpers.SetupSQLiteDatabase(t)))
}

// queryErrorRecorder keeps the errors gorm reports for each statement
type queryErrorRecorder struct {
	logger.Interface
	errs []error
}

func (r *queryErrorRecorder) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if err != nil {
		r.errs = append(r.errs, err)
	}
}

func TestDBSnapshotStoreMissingKeyIsNotAQueryError(t *testing.T) {
	recorder := &queryErrorRecorder{Interface: logger.Discard}
	db := testhelpers.SetupSQLiteDatabase(t).Session(&gorm.Session{Logger: recorder})

	_, err := NewDBSnapshotStore(db).LoadSnapshot(context.Background(), SnapshotKeyFor("first-visit"))
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	assert.Empty(t, recorder.errs)
}

func TestDBSnapshotStorePostgres(t *testing.T) {
	exerciseSnapshotStore(t, NewDBSnapshotStore(testhelpers.SetupTestDatabase(t)))
}

func TestRedisSnapshotStore(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	exerciseSnapshotStore(t, NewRedisSnapshotStore(client, 0))

	ctx := context.Background()
	expiring := NewRedisSnapshotStore(client, time.Minute)
	require.NoError(t, expiring.SaveSnapshot(ctx, "expiring", []byte("[]")))
	ttl, err := client.TTL(ctx, "expiring").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
