package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	require.True(t, RoleStudent.Valid())
	require.True(t, RoleTeacher.Valid())
	require.True(t, RoleAdmin.Valid())
	require.False(t, Role("").Valid())
	require.False(t, Role("Teacher").Valid())
	require.False(t, Role("superuser").Valid())
}

func TestCanManageLectures(t *testing.T) {
	require.False(t, RoleStudent.CanManageLectures())
	require.True(t, RoleTeacher.CanManageLectures())
	require.True(t, RoleAdmin.CanManageLectures())
}
