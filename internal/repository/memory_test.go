package repository

import (
	"testing"

	"hospital-management-backend/internal/models"
	"hospital-management-backend/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoRoundTrip(t *testing.T) {
	repo := NewMemoryHospitalRepo()

	hospital := &models.Hospital{ID: "h-1", Name: "RSUD Pusat", City: "Jakarta"}
	require.NoError(t, repo.Put(hospital))

	exists, err := repo.Exists("h-1")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := repo.Get("h-1")
	require.NoError(t, err)
	assert.Equal(t, "RSUD Pusat", got.Name)

	// Put is an upsert.
	hospital.Name = "RSUD Pusat Baru"
	require.NoError(t, repo.Put(hospital))
	got, err = repo.Get("h-1")
	require.NoError(t, err)
	assert.Equal(t, "RSUD Pusat Baru", got.Name)

	require.NoError(t, repo.Delete("h-1"))
	_, err = repo.Get("h-1")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	exists, err = repo.Exists("h-1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryRepoSnapshotSemantics(t *testing.T) {
	repo := NewMemoryUserRepo()
	require.NoError(t, repo.Put(&models.User{ID: "u-1", Name: "Dr. Ana"}))

	// Mutating a returned row must not leak back into the store.
	got, err := repo.Get("u-1")
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := repo.Get("u-1")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Ana", again.Name)

	// Same for scan results.
	rows, err := repo.Scan()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	rows[0].Name = "mutated"

	again, err = repo.Get("u-1")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Ana", again.Name)
}

func TestMemoryRepoDeleteIsIdempotent(t *testing.T) {
	repo := NewMemoryAppointmentRepo()
	assert.NoError(t, repo.Delete("missing"))
}

func TestMemoryAuditRepoOrdersNewestFirst(t *testing.T) {
	repo := NewMemoryAuditRepo()
	actor := "principal-1"

	require.NoError(t, repo.CreateAuditLog(&actor, "first", "one"))
	require.NoError(t, repo.CreateAuditLog(&actor, "second", "two"))
	require.NoError(t, repo.CreateAuditLog(nil, "third", "three"))

	logs, err := repo.GetAllAuditLogs()
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.True(t, logs[0].CreatedAt >= logs[1].CreatedAt)
	assert.True(t, logs[1].CreatedAt >= logs[2].CreatedAt)
	for _, log := range logs {
		if log.Action == "third" {
			assert.Nil(t, log.ActorID)
		} else {
			require.NotNil(t, log.ActorID)
			assert.Equal(t, actor, *log.ActorID)
		}
	}
}
