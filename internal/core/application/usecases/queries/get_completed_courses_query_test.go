package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetCompletedCoursesQuery_Valid(t *testing.T) {
	query, err := queries.NewGetCompletedCoursesQuery(kernel.Today())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.Day().IsEqual(kernel.Today()))
}

func TestNewGetCompletedCoursesQuery_RejectsZeroDay(t *testing.T) {
	var day kernel.Day
	_, err := queries.NewGetCompletedCoursesQuery(day)
	require.Error(t, err)
}

func TestGetCompletedCoursesQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetCompletedCoursesQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetCompletedCoursesQueryIsNotConstructed)
}
