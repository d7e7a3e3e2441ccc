package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_IsStaff(t *testing.T) {
	assert.True(t, RoleAdmin.IsStaff())
	assert.False(t, RoleManager.IsStaff())
	assert.False(t, RoleEmployee.IsStaff())
	assert.False(t, Role(0).IsStaff())

	u := &User{Role: RoleAdmin}
	assert.True(t, u.IsStaff())
}

func TestRole_Valid(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, r.Valid(), r.String())
	}
	assert.False(t, Role(0).Valid())
	assert.False(t, Role(4).Valid())
	assert.Equal(t, "Role(9)", Role(9).String())
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{"Manager", RoleManager},
		{" EMPLOYEE ", RoleEmployee},
		{"1", RoleAdmin},
		{"3", RoleEmployee},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "owner", "0", "4", "-1", "300"} {
		_, err := ParseRole(bad)
		assert.Error(t, err, bad)
	}
}

func TestPtrDeref(t *testing.T) {
	p := Ptr("cover.png")
	assert.Equal(t, "cover.png", Deref(p))
	assert.Equal(t, "", Deref[string](nil))
}
